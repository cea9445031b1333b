package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"time"
)

// Getter is implemented by things holding a Value, such as a box. From
// reads them through Get at any nesting depth.
type Getter interface {
	Get() *Value
}

// From converts a native Go value into a Value.
//
// nil becomes null, a *Value or Getter is deep copied (a nil pointer
// Getter is undefined), numbers of any Go kind become
// NumberKind, time.Time becomes DateKind, slices and arrays become arrays and
// maps with string keys become objects with sorted keys. Function values fail
// with ErrUnsupportedClone; any other unsupported kind fails with
// ErrIncomparableType.
func From(x any) (*Value, error) {
	if g, ok := x.(Getter); ok {
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Undefined(), nil
		}
		return Clone(g.Get()), nil
	}
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if t == nil {
			return Undefined(), nil
		}
		return Clone(t), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case float64:
		return FromNumber(t), nil
	case int:
		return FromNumber(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: json number %q", ErrIncomparableType, t)
		}
		return FromNumber(f), nil
	case time.Time:
		return FromDate(t), nil
	case []any:
		res := make([]*Value, len(t))
		for i, e := range t {
			v, err := From(e)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return FromSlice(res), nil
	case []*Value:
		res := make([]*Value, len(t))
		for i, e := range t {
			res[i] = Clone(e)
		}
		return FromSlice(res), nil
	case map[string]any:
		return fromMap(reflect.ValueOf(t))
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) (*Value, error) {
	switch rv.Kind() {
	case reflect.Func:
		return nil, fmt.Errorf("%w: cannot copy %s", ErrUnsupportedClone, rv.Type())
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromNumber(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return FromNumber(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return FromNumber(rv.Float()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return From(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return FromSlice(nil), nil
		}
		fallthrough
	case reflect.Array:
		res := make([]*Value, rv.Len())
		for i := range rv.Len() {
			v, err := From(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			res[i] = v
		}
		return FromSlice(res), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrIncomparableType, rv.Type().Key())
		}
		return fromMap(rv)
	}
	if !rv.IsValid() {
		return Null(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrIncomparableType, rv.Type())
}

func fromMap(rv reflect.Value) (*Value, error) {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)
	res := &Value{
		Kind:   ObjectKind,
		Keys:   make([]string, 0, len(keys)),
		Fields: make([]*Value, 0, len(keys)),
	}
	for _, k := range keys {
		mv := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		v, err := From(mv.Interface())
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		res.Keys = append(res.Keys, k)
		res.Fields = append(res.Fields, v)
	}
	return res, nil
}

// Interface converts v back into native Go values. Undefined and null both
// become nil; holes in arrays become nil elements.
func (v *Value) Interface() any {
	switch KindOf(v) {
	case UndefinedKind, NullKind:
		return nil
	case BoolKind:
		return v.Bool
	case NumberKind:
		return v.Number
	case StringKind:
		return v.String
	case DateKind:
		return v.Date
	case ArrayKind:
		res := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			res[i] = e.Interface()
		}
		return res
	case ObjectKind:
		res := make(map[string]any, len(v.Keys))
		for i, k := range v.Keys {
			res[k] = v.Fields[i].Interface()
		}
		return res
	default:
		panic("impossible kind")
	}
}
