package value

// Clone returns a deep copy of v. A nil v clones to an undefined value.
func Clone(v *Value) *Value {
	switch KindOf(v) {
	case UndefinedKind:
		return Undefined()
	case NullKind:
		return Null()
	case BoolKind:
		return FromBool(v.Bool)
	case NumberKind:
		return FromNumber(v.Number)
	case StringKind:
		return FromString(v.String)
	case DateKind:
		return FromDate(v.Date)
	case ArrayKind:
		elems := make([]*Value, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = Clone(e)
		}
		return FromSlice(elems)
	case ObjectKind:
		res := &Value{
			Kind:   ObjectKind,
			Keys:   make([]string, len(v.Keys)),
			Fields: make([]*Value, len(v.Fields)),
		}
		copy(res.Keys, v.Keys)
		for i, f := range v.Fields {
			res.Fields[i] = Clone(f)
		}
		return res
	default:
		panic("impossible kind")
	}
}

func (v *Value) Clone() *Value {
	return Clone(v)
}
