package patch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/debug"
	"github.com/sinclairzx81/statebox/keypath"
	"github.com/sinclairzx81/statebox/value"

	jsonpatch "github.com/evanphx/json-patch"
)

type operation struct {
	Op    string       `json:"op"`
	Path  string       `json:"path"`
	Value *value.Value `json:"value,omitempty"`
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func pointer(segs []keypath.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(s.String()))
	}
	return b.String()
}

// ToJSONPatch translates syncs into RFC 6902 operations applicable to the
// JSON rendering of base. Members that would be created by a box are
// added, existing members are replaced and members set to undefined are
// removed. A descriptor at the root is expanded into operations on the
// root's members, which requires the root to keep its kind.
func ToJSONPatch(base *value.Value, syncs []box.Sync) (jsonpatch.Patch, error) {
	doc := value.Clone(base)
	var ops []operation
	for i := range syncs {
		s := &syncs[i]
		segs, err := keypath.Parse(s.Path)
		if err != nil {
			return nil, fmt.Errorf("sync %d: %w", i, err)
		}
		var sOps []operation
		if len(segs) == 0 {
			sOps, err = rootOps(doc, s.Data)
		} else {
			sOps, err = memberOps(doc, segs, s.Data)
		}
		if err != nil {
			return nil, fmt.Errorf("sync %d (%q): %w", i, s.Path, err)
		}
		ops = append(ops, sOps...)
		doc, err = advance(doc, *s)
		if err != nil {
			return nil, fmt.Errorf("sync %d (%q): %w", i, s.Path, err)
		}
	}
	d, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	if debug.Sync() {
		debug.Logf("json patch from %d syncs: %s\n", len(syncs), d)
	}
	return jsonpatch.DecodePatch(d)
}

// advance applies s to doc the way a box would.
func advance(doc *value.Value, s box.Sync) (*value.Value, error) {
	b, err := box.From(doc)
	if err != nil {
		return nil, err
	}
	if err := b.Sync(s); err != nil {
		return nil, err
	}
	return b.Get(), nil
}

func rootOps(doc, data *value.Value) ([]operation, error) {
	kind := value.KindOf(doc)
	if kind != value.KindOf(data) {
		return nil, fmt.Errorf("%w: %s to %s", ErrRootReplace, kind, value.KindOf(data))
	}
	var ops []operation
	switch kind {
	case value.ObjectKind:
		for i, k := range doc.Keys {
			if doc.Fields[i].IsUndefined() {
				continue
			}
			if f := data.Get(k); f == nil || f.IsUndefined() {
				ops = append(ops, operation{Op: "remove", Path: pointer([]keypath.Segment{keypath.KeySegment(k)})})
			}
		}
		for i, k := range data.Keys {
			f := data.Fields[i]
			if f.IsUndefined() {
				continue
			}
			old := doc.Get(k)
			if value.Equal(old, f) {
				continue
			}
			op := "add"
			if old != nil && !old.IsUndefined() {
				op = "replace"
			}
			ops = append(ops, operation{Op: op, Path: pointer([]keypath.Segment{keypath.KeySegment(k)}), Value: value.Clone(f)})
		}
	case value.ArrayKind:
		n, m := len(data.Elems), len(doc.Elems)
		for i := range min(n, m) {
			if value.Equal(doc.Elems[i], data.Elems[i]) {
				continue
			}
			ops = append(ops, operation{Op: "replace", Path: pointer([]keypath.Segment{keypath.IndexSegment(i)}), Value: jsonElem(data.Elems[i])})
		}
		for i := m; i < n; i++ {
			ops = append(ops, operation{Op: "add", Path: "/-", Value: jsonElem(data.Elems[i])})
		}
		for i := m - 1; i >= n; i-- {
			ops = append(ops, operation{Op: "remove", Path: pointer([]keypath.Segment{keypath.IndexSegment(i)})})
		}
	default:
		if !value.Equal(doc, data) {
			return nil, fmt.Errorf("%w: %s", ErrRootReplace, kind)
		}
	}
	return ops, nil
}

func memberOps(doc *value.Value, segs []keypath.Segment, data *value.Value) ([]operation, error) {
	cur := doc
	for i, seg := range segs {
		ptr := pointer(segs[:i+1])
		last := i == len(segs)-1
		switch value.KindOf(cur) {
		case value.ObjectKind:
			child := cur.Get(seg.String())
			if child == nil || child.IsUndefined() {
				if last && value.KindOf(data) == value.UndefinedKind {
					return nil, nil
				}
				if err := checkIndices(segs[i+1:]); err != nil {
					return nil, err
				}
				return []operation{{Op: "add", Path: ptr, Value: build(segs[i+1:], data)}}, nil
			}
			if last {
				if value.KindOf(data) == value.UndefinedKind {
					return []operation{{Op: "remove", Path: ptr}}, nil
				}
				return []operation{{Op: "replace", Path: ptr, Value: value.Clone(data)}}, nil
			}
			cur = child
		case value.ArrayKind:
			if seg.Kind != keypath.Index {
				return nil, fmt.Errorf("%w: key %q into array", box.ErrInvalidTraversal, seg.Key)
			}
			if seg.Index >= len(cur.Elems) {
				if err := checkIndices(segs[i:]); err != nil {
					return nil, err
				}
				end := pointer(segs[:i]) + "/-"
				var ops []operation
				for range seg.Index - len(cur.Elems) {
					ops = append(ops, operation{Op: "add", Path: end, Value: value.Null()})
				}
				return append(ops, operation{Op: "add", Path: end, Value: jsonElem(build(segs[i+1:], data))}), nil
			}
			child := cur.Elems[seg.Index]
			if last {
				return []operation{{Op: "replace", Path: ptr, Value: jsonElem(data)}}, nil
			}
			if child.IsUndefined() {
				if err := checkIndices(segs[i+1:]); err != nil {
					return nil, err
				}
				return []operation{{Op: "replace", Path: ptr, Value: build(segs[i+1:], data)}}, nil
			}
			cur = child
		default:
			return nil, fmt.Errorf("%w: cannot move into a %s value at %q", box.ErrInvalidTraversal, value.KindOf(cur), keypath.String(segs[:i]))
		}
	}
	return nil, nil
}

// checkIndices rejects the array indices a box refuses to create below a
// missing member.
func checkIndices(segs []keypath.Segment) error {
	for _, s := range segs {
		if s.Kind == keypath.Index && s.Index > box.DefaultMaxIndex {
			return fmt.Errorf("%w: index %d exceeds %d", box.ErrInvalidTraversal, s.Index, box.DefaultMaxIndex)
		}
	}
	return nil
}

// build returns the value a box creates when data is synced at segs below
// a missing member.
func build(segs []keypath.Segment, data *value.Value) *value.Value {
	if len(segs) == 0 {
		return value.Clone(data)
	}
	inner := build(segs[1:], data)
	if segs[0].Kind == keypath.Index {
		elems := make([]*value.Value, segs[0].Index+1)
		for i := range segs[0].Index {
			elems[i] = value.Null()
		}
		elems[segs[0].Index] = jsonElem(inner)
		return value.FromSlice(elems)
	}
	return value.FromKeyVals([]value.KeyVal{{Key: segs[0].String(), Val: inner}})
}

// jsonElem maps an undefined array element to the null it is rendered as.
func jsonElem(v *value.Value) *value.Value {
	if value.KindOf(v) == value.UndefinedKind {
		return value.Null()
	}
	return value.Clone(v)
}

// ApplyJSON applies syncs to a JSON document, which must be an object or
// an array.
func ApplyJSON(doc []byte, syncs ...box.Sync) ([]byte, error) {
	base, err := value.ParseJSON(doc)
	if err != nil {
		return nil, err
	}
	switch base.Kind {
	case value.ObjectKind, value.ArrayKind:
	default:
		return nil, fmt.Errorf("%w: document is a %s", ErrRootReplace, base.Kind)
	}
	p, err := ToJSONPatch(base, syncs)
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return doc, nil
	}
	return p.Apply(doc)
}
