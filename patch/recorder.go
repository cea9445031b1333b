package patch

import (
	"fmt"
	"slices"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/value"
)

// Recorder accumulates the sync descriptors published at or below a box.
type Recorder struct {
	obs   *box.Observer
	syncs []box.Sync
}

// Record attaches a new Recorder to b.
func Record(b *box.Box) *Recorder {
	r := &Recorder{}
	r.obs = b.Observe().Sync(func(s box.Sync) {
		r.syncs = append(r.syncs, s)
	})
	return r
}

// Syncs returns the recorded descriptors in publish order.
func (r *Recorder) Syncs() []box.Sync {
	return slices.Clone(r.syncs)
}

func (r *Recorder) Len() int {
	return len(r.syncs)
}

func (r *Recorder) Reset() {
	r.syncs = nil
}

// Stop detaches the recorder; descriptors recorded so far are kept.
func (r *Recorder) Stop() {
	r.obs.Dispose()
}

// Replay applies the recorded descriptors to target.
func (r *Recorder) Replay(target *box.Box) error {
	return Replay(target, r.syncs...)
}

// Replay applies syncs to target in order, stopping at the first error.
func Replay(target *box.Box, syncs ...box.Sync) error {
	for i := range syncs {
		if err := target.Sync(syncs[i]); err != nil {
			return fmt.Errorf("sync %d (%q): %w", i, syncs[i].Path, err)
		}
	}
	return nil
}

// ToValue renders syncs as an array of {path, data} objects.
func ToValue(syncs []box.Sync) *value.Value {
	elems := make([]*value.Value, len(syncs))
	for i := range syncs {
		elems[i] = value.FromKeyVals([]value.KeyVal{
			{Key: "path", Val: value.FromString(syncs[i].Path)},
			{Key: "data", Val: value.Clone(syncs[i].Data)},
		})
	}
	return value.FromSlice(elems)
}

// FromValue reads descriptors back from a value produced by ToValue or
// decoded from a document. A single object is read as one descriptor. A
// missing data member reads as undefined.
func FromValue(v *value.Value) ([]box.Sync, error) {
	switch value.KindOf(v) {
	case value.ObjectKind:
		s, err := syncFromValue(v)
		if err != nil {
			return nil, err
		}
		return []box.Sync{s}, nil
	case value.ArrayKind:
		res := make([]box.Sync, 0, len(v.Elems))
		for i, e := range v.Elems {
			s, err := syncFromValue(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			res = append(res, s)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: expected object or array, got %s", ErrBadSync, value.KindOf(v))
	}
}

func syncFromValue(v *value.Value) (box.Sync, error) {
	if value.KindOf(v) != value.ObjectKind {
		return box.Sync{}, fmt.Errorf("%w: expected object, got %s", ErrBadSync, value.KindOf(v))
	}
	p := v.Get("path")
	switch value.KindOf(p) {
	case value.StringKind:
	case value.UndefinedKind, value.NullKind:
		p = value.FromString("")
	default:
		return box.Sync{}, fmt.Errorf("%w: path must be a string, got %s", ErrBadSync, p.Kind)
	}
	return box.Sync{Path: p.String, Data: value.Clone(v.Get("data"))}, nil
}
