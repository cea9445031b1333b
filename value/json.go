package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// MarshalJSON encodes v with object keys in order. Undefined object fields
// are omitted; undefined array holes and an undefined top level encode as
// null. Dates encode as RFC 3339 strings.
func (v *Value) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	switch KindOf(v) {
	case UndefinedKind, NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case NumberKind:
		return writeMarshal(buf, v.Number)
	case StringKind:
		return writeMarshal(buf, v.String)
	case DateKind:
		return writeMarshal(buf, v.Date)
	case ArrayKind:
		buf.WriteByte('[')
		for i, e := range v.Elems {
			if i != 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectKind:
		buf.WriteByte('{')
		n := 0
		for i, k := range v.Keys {
			f := v.Fields[i]
			if f.IsUndefined() {
				continue
			}
			if n != 0 {
				buf.WriteByte(',')
			}
			n++
			if err := writeMarshal(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, f); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		panic("impossible kind")
	}
	return nil
}

func writeMarshal(buf *bytes.Buffer, x any) error {
	d, err := json.Marshal(x)
	if err != nil {
		return err
	}
	buf.Write(d)
	return nil
}

// UnmarshalJSON decodes a JSON document, preserving object key order.
func (v *Value) UnmarshalJSON(d []byte) error {
	res, err := ParseJSON(d)
	if err != nil {
		return err
	}
	*v = *res
	return nil
}

// ParseJSON decodes a single JSON document into a Value.
func ParseJSON(d []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return res, nil
}

func decodeJSON(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return FromNumber(f), nil
	case json.Delim:
		switch t {
		case '[':
			res := FromSlice(nil)
			for dec.More() {
				e, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Elems = append(res.Elems, e)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		case '{':
			res := FromKeyVals(nil)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}
				f, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Put(key, f)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}
