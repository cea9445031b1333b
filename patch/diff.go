package patch

import (
	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/keypath"
	"github.com/sinclairzx81/statebox/value"
)

// Diff returns descriptors which, synced in order onto a box holding from,
// leave it holding a value equal to to. Objects whose keys are a superset of
// the original keys and arrays which do not shrink are descended into;
// anything else is replaced whole.
func Diff(from, to *value.Value) []box.Sync {
	var res []box.Sync
	diff(nil, from, to, &res)
	return res
}

func diff(path []string, from, to *value.Value, res *[]box.Sync) {
	if value.Equal(from, to) {
		return
	}
	kind := value.KindOf(from)
	if kind != value.KindOf(to) {
		emit(path, to, res)
		return
	}
	switch kind {
	case value.ObjectKind:
		for _, k := range from.Keys {
			if to.Get(k) == nil {
				emit(path, to, res)
				return
			}
		}
		for _, k := range to.Keys {
			if !keypath.Addressable(k) {
				emit(path, to, res)
				return
			}
		}
		for i, k := range to.Keys {
			p := append(path[:len(path):len(path)], k)
			f := from.Get(k)
			if f == nil {
				emit(p, to.Fields[i], res)
				continue
			}
			diff(p, f, to.Fields[i], res)
		}
	case value.ArrayKind:
		if len(to.Elems) < len(from.Elems) {
			emit(path, to, res)
			return
		}
		for i, e := range to.Elems {
			p := append(path[:len(path):len(path)], keypath.IndexSegment(i).String())
			if i >= len(from.Elems) {
				emit(p, e, res)
				continue
			}
			diff(p, from.Elems[i], e, res)
		}
	default:
		emit(path, to, res)
	}
}


func emit(path []string, data *value.Value, res *[]box.Sync) {
	*res = append(*res, box.Sync{Path: keypath.Join(path...), Data: value.Clone(data)})
}
