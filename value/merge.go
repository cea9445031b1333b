package value

// Merge merges right onto left, with right dominant. When the kinds differ
// the result is a copy of right. Objects merge key by key, arrays
// concatenate, and any other pair resolves to right. Neither argument is
// modified.
func Merge(left, right *Value) *Value {
	kl, kr := KindOf(left), KindOf(right)
	if kl != kr {
		return Clone(right)
	}
	switch kl {
	case ObjectKind:
		res := Clone(left)
		for i, k := range right.Keys {
			res.Put(k, Clone(right.Fields[i]))
		}
		return res
	case ArrayKind:
		elems := make([]*Value, 0, len(left.Elems)+len(right.Elems))
		for _, e := range left.Elems {
			elems = append(elems, Clone(e))
		}
		for _, e := range right.Elems {
			elems = append(elems, Clone(e))
		}
		return FromSlice(elems)
	default:
		return Clone(right)
	}
}
