package box

import (
	"github.com/sinclairzx81/statebox/debug"
	"github.com/sinclairzx81/statebox/value"
)

// Sync describes one change: the path of the box that published it,
// relative to the tree root, and a snapshot of that box's value.
type Sync struct {
	Path string       `json:"path"`
	Data *value.Value `json:"data"`
}

func (s Sync) Clone() Sync {
	return Sync{Path: s.Path, Data: value.Clone(s.Data)}
}

// Sync applies a descriptor published by a tree of the same shape,
// creating intermediate boxes as needed.
func (b *Box) Sync(s Sync) error {
	if debug.Sync() {
		debug.Logf("sync %q onto %q: %v\n", s.Path, b.Path(), s.Data)
	}
	target, err := b.With(s.Path)
	if err != nil {
		return err
	}
	return target.Set(s.Data)
}
