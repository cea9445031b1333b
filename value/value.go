package value

import (
	"maps"
	"slices"
	"time"
)

// Value is a tagged union over the supported state kinds. Fields are
// populated according to Kind: Bool, Number, String and Date hold scalars,
// Elems holds array elements and Keys[i] names Fields[i] for objects.
type Value struct {
	Kind Kind

	Bool   bool
	Number float64
	String string
	Date   time.Time

	Elems []*Value

	Keys   []string
	Fields []*Value
}

type KeyVal struct {
	Key string
	Val *Value
}

func Undefined() *Value {
	return &Value{Kind: UndefinedKind}
}

func Null() *Value {
	return &Value{Kind: NullKind}
}

func FromBool(v bool) *Value {
	return &Value{Kind: BoolKind, Bool: v}
}

func FromNumber(f float64) *Value {
	return &Value{Kind: NumberKind, Number: f}
}

func FromInt(i int) *Value {
	return FromNumber(float64(i))
}

func FromString(v string) *Value {
	return &Value{Kind: StringKind, String: v}
}

func FromDate(t time.Time) *Value {
	return &Value{Kind: DateKind, Date: t}
}

// FromSlice builds an array value. The elements are not copied; nil
// elements are holes.
func FromSlice(elems []*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}
	return &Value{Kind: ArrayKind, Elems: elems}
}

// FromKeyVals builds an object value in the order given. A repeated key
// replaces the earlier value in place.
func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{Kind: ObjectKind, Keys: []string{}, Fields: []*Value{}}
	for _, kv := range kvs {
		res.Put(kv.Key, kv.Val)
	}
	return res
}

// FromMap builds an object value with its keys in sorted order.
func FromMap(m map[string]*Value) *Value {
	res := &Value{
		Kind:   ObjectKind,
		Keys:   make([]string, 0, len(m)),
		Fields: make([]*Value, 0, len(m)),
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.Keys = append(res.Keys, k)
		res.Fields = append(res.Fields, m[k])
	}
	return res
}

// KindOf returns the kind of v, treating nil as undefined.
func KindOf(v *Value) Kind {
	if v == nil {
		return UndefinedKind
	}
	return v.Kind
}

func (v *Value) IsUndefined() bool {
	return KindOf(v) == UndefinedKind
}

// Len returns the number of elements or fields, and 0 for scalars.
func (v *Value) Len() int {
	switch KindOf(v) {
	case ArrayKind:
		return len(v.Elems)
	case ObjectKind:
		return len(v.Keys)
	default:
		return 0
	}
}

// Get returns the field named key of an object, or nil.
func (v *Value) Get(key string) *Value {
	if KindOf(v) != ObjectKind {
		return nil
	}
	i := slices.Index(v.Keys, key)
	if i < 0 {
		return nil
	}
	return v.Fields[i]
}

// Index returns the i'th element of an array, or nil.
func (v *Value) Index(i int) *Value {
	if KindOf(v) != ArrayKind || i < 0 || i >= len(v.Elems) {
		return nil
	}
	return v.Elems[i]
}

// Put sets the field key of an object, appending it when absent.
func (v *Value) Put(key string, field *Value) {
	if i := slices.Index(v.Keys, key); i >= 0 {
		v.Fields[i] = field
		return
	}
	v.Keys = append(v.Keys, key)
	v.Fields = append(v.Fields, field)
}
