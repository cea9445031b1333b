// Package value provides the tagged-union representation of state held in a
// statebox tree.
//
// # Overview
//
// A Value is one of the following kinds:
//
//   - UndefinedKind: no value; the zero Kind and the reading of a nil *Value
//   - NullKind: explicit null
//   - BoolKind, NumberKind, StringKind: scalars
//   - DateKind: an instant in time
//   - ArrayKind: ordered elements in Elems; a nil element is a hole
//   - ObjectKind: Keys[i] names Fields[i], in insertion order
//
// Every operation in this package switches exhaustively over Kind rather
// than inspecting Go types at run time. Conversion from native Go values is
// confined to From, which is the only place unsupported values (functions,
// channels, structs, ...) are rejected.
//
// # Operations
//
//	v, err := value.From(map[string]any{"a": 1.0})
//	c := value.Clone(v)          // deep copy
//	value.Equal(v, c)            // true
//	m := value.Merge(v, other)   // right-dominant merge
//
// Merge copies right over left when the kinds differ, merges objects key by
// key, concatenates arrays and otherwise yields right.
//
// # JSON
//
// Values encode to JSON preserving object key order. Undefined object fields
// are omitted and undefined array elements encode as null:
//
//	d, err := json.Marshal(v)
//	v, err := value.ParseJSON(d)
//
// # Thread Safety
//
// Values are not safe for concurrent mutation.
package value
