package keypath

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

const Separator = "/"

var ErrInvalidKey = errors.New("invalid key")

type Kind int

const (
	Invalid Kind = iota
	Index
	Key
	Path
)

func (k Kind) String() string {
	switch k {
	case Index:
		return "index"
	case Key:
		return "key"
	case Path:
		return "path"
	default:
		return "invalid"
	}
}

// Classify returns the kind of key.
func Classify(key any) Kind {
	switch k := key.(type) {
	case string:
		return classifyString(k)
	case nil:
		return Invalid
	}
	if _, ok := numericIndex(key); ok {
		return Index
	}
	return Invalid
}

func classifyString(s string) Kind {
	if strings.Contains(s, Separator) {
		return Path
	}
	if isIndex(s) {
		return Index
	}
	return Key
}

// isIndex reports whether s is a decimal index. "0" is an index but "01"
// is a key, so significant leading zeros are never lost.
func isIndex(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func numericIndex(key any) (int, bool) {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 || i > math.MaxInt32 {
			return 0, false
		}
		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt32 {
			return 0, false
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}

// Segment is a single step of a path.
type Segment struct {
	Kind  Kind
	Index int
	Key   string
}

func IndexSegment(i int) Segment {
	return Segment{Kind: Index, Index: i, Key: strconv.Itoa(i)}
}

func KeySegment(k string) Segment {
	return Segment{Kind: Key, Key: k}
}

// String returns the name of the segment as it appears in a path.
func (s Segment) String() string {
	if s.Kind == Index {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Parse resolves key into ordered segments. A path is split on the
// separator and empty segments are discarded.
func Parse(key any) ([]Segment, error) {
	switch Classify(key) {
	case Index:
		if s, ok := key.(string); ok {
			i, _ := strconv.Atoi(s)
			return []Segment{IndexSegment(i)}, nil
		}
		i, _ := numericIndex(key)
		return []Segment{IndexSegment(i)}, nil
	case Key:
		k := key.(string)
		if k == "" {
			return nil, nil
		}
		return []Segment{KeySegment(k)}, nil
	case Path:
		parts := Split(key.(string))
		res := make([]Segment, 0, len(parts))
		for _, p := range parts {
			if isIndex(p) {
				i, _ := strconv.Atoi(p)
				res = append(res, IndexSegment(i))
				continue
			}
			res = append(res, KeySegment(p))
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %v (%T)", ErrInvalidKey, key, key)
	}
}

// Split splits a path on the separator, discarding empty segments.
func Split(path string) []string {
	parts := strings.Split(path, Separator)
	res := parts[:0]
	for _, p := range parts {
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

// Addressable reports whether a member named name can be reached through
// a path: it must be non-empty and must not contain the separator.
func Addressable(name string) bool {
	return name != "" && !strings.Contains(name, Separator)
}

func Join(names ...string) string {
	return strings.Join(names, Separator)
}

// String renders segments as a path.
func String(segs []Segment) string {
	names := make([]string, len(segs))
	for i, s := range segs {
		names[i] = s.String()
	}
	return Join(names...)
}
