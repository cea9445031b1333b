package value

import "slices"

// Equal reports whether a and b are deeply equal. Values of different kinds
// are never equal. Objects are equal when they hold the same set of keys
// with equal values, regardless of key order.
func Equal(a, b *Value) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case UndefinedKind, NullKind:
		return true
	case BoolKind:
		return a.Bool == b.Bool
	case NumberKind:
		return a.Number == b.Number
	case StringKind:
		return a.String == b.String
	case DateKind:
		return a.Date.Equal(b.Date)
	case ArrayKind:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		return equalObjects(a, b)
	default:
		panic("impossible kind")
	}
}

func equalObjects(a, b *Value) bool {
	if len(a.Keys) != len(b.Keys) {
		return false
	}
	ak := slices.Sorted(slices.Values(a.Keys))
	bk := slices.Sorted(slices.Values(b.Keys))
	if !slices.Equal(ak, bk) {
		return false
	}
	for i, k := range a.Keys {
		if !Equal(a.Fields[i], b.Get(k)) {
			return false
		}
	}
	return true
}
