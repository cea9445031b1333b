// Package codec reads and writes documents as values, keeping the key
// order of objects.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sinclairzx81/statebox/value"

	"github.com/goccy/go-yaml"
)

// Decode parses d in format f.
func Decode(f Format, d []byte) (*value.Value, error) {
	switch f {
	case JSONFormat:
		return value.ParseJSON(d)
	case YAMLFormat:
		return DecodeYAML(d)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
	}
}

// Read reads everything from r and decodes it.
func Read(f Format, r io.Reader) (*value.Value, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(f, d)
}

// Encode renders v in format f, ending with a newline.
func Encode(f Format, v *value.Value) ([]byte, error) {
	switch f {
	case JSONFormat:
		return EncodeJSON(v)
	case YAMLFormat:
		return EncodeYAML(v)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
	}
}

func Write(f Format, w io.Writer, v *value.Value) error {
	d, err := Encode(f, v)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func EncodeJSON(v *value.Value) ([]byte, error) {
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DecodeYAML parses a YAML document. Mappings keep their order; non string
// keys are formatted with fmt.Sprint. An empty document is null.
func DecodeYAML(d []byte) (*value.Value, error) {
	var x any
	if err := yaml.UnmarshalWithOptions(d, &x, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromYAML(x)
}

func fromYAML(x any) (*value.Value, error) {
	switch t := x.(type) {
	case yaml.MapSlice:
		res := value.FromKeyVals(nil)
		for _, item := range t {
			k, ok := item.Key.(string)
			if !ok {
				k = fmt.Sprint(item.Key)
			}
			v, err := fromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			res.Put(k, v)
		}
		return res, nil
	case []any:
		elems := make([]*value.Value, len(t))
		for i, e := range t {
			v, err := fromYAML(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = v
		}
		return value.FromSlice(elems), nil
	default:
		return value.From(x)
	}
}

// EncodeYAML renders v as block style YAML. Undefined object members are
// omitted and undefined array elements are written as null.
func EncodeYAML(v *value.Value) ([]byte, error) {
	return yaml.MarshalWithOptions(toYAML(v), yaml.AutoInt(), yaml.IndentSequence(true))
}

func toYAML(v *value.Value) any {
	switch value.KindOf(v) {
	case value.UndefinedKind, value.NullKind:
		return nil
	case value.DateKind:
		return v.Date.Format(time.RFC3339Nano)
	case value.ArrayKind:
		res := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			res[i] = toYAML(e)
		}
		return res
	case value.ObjectKind:
		res := make(yaml.MapSlice, 0, len(v.Keys))
		for i, k := range v.Keys {
			if v.Fields[i].IsUndefined() {
				continue
			}
			res = append(res, yaml.MapItem{Key: k, Value: toYAML(v.Fields[i])})
		}
		return res
	default:
		return v.Interface()
	}
}
