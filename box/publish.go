package box

import (
	"fmt"
	"slices"

	"github.com/sinclairzx81/statebox/debug"
	"github.com/sinclairzx81/statebox/keypath"
	"github.com/sinclairzx81/statebox/value"
)

// Publish notifies the observers of b and of every ancestor up to the root.
// Each level's data callbacks receive that level's own value; every sync
// callback receives one descriptor anchored at b.
//
// Callbacks may mutate the tree. Nested publishing within one tree is
// bounded by the tree's maximum publish depth, past which Publish returns
// ErrReentrancy.
func (b *Box) Publish() error {
	if b.disposed {
		return ErrDisposed
	}
	if err := b.checkDepth(); err != nil {
		return err
	}
	root := b.Root()
	root.depth++
	defer func() { root.depth-- }()

	s := Sync{Path: b.Path(), Data: b.Get()}
	if debug.Publish() {
		debug.Log().Debug().
			Str("path", s.Path).
			Bool("addressable", b.Addressable()).
			Int("depth", root.depth).
			Str("kind", s.Data.Kind.String()).
			Msg("publish")
	}
	for cur := b; cur != nil; cur = cur.parent {
		observers := slices.Clone(cur.observers)
		if len(observers) == 0 {
			continue
		}
		data := cur.Get()
		for _, o := range observers {
			o.sendNext(data, s)
		}
	}
	return nil
}

// checkDepth fails with ErrReentrancy when publishing from b would exceed
// the tree's bound. Mutations check it before touching the tree.
func (b *Box) checkDepth() error {
	if d := b.Root().depth; d >= b.options().maxPublishDepth {
		return fmt.Errorf("%w: %d nested publishes at %q", ErrReentrancy, d, b.Path())
	}
	return nil
}

// Dispose releases b and its descendants. Children are disposed first,
// then the observers of b receive their end event and b is detached from
// its parent. A disposed box rejects further mutation with ErrDisposed.
func (b *Box) Dispose() {
	b.dispose(true)
}

func (b *Box) dispose(detach bool) {
	if b.disposed {
		return
	}
	for _, k := range slices.Clone(b.kids) {
		if k != nil {
			k.dispose(false)
		}
	}
	data := b.Get()
	if debug.Dispose() {
		debug.Logf("dispose %q: %v\n", b.Path(), data)
	}
	for _, o := range slices.Clone(b.observers) {
		o.sendEnd(data)
	}
	if detach && b.parent != nil {
		if i, k := b.parent.child(b.name); k == b {
			b.parent.remove(i)
		}
	}
	b.parent = nil
	b.disposed = true
}

// remove takes the child at i out of the collection. Array slots other than
// the last are left as holes so the remaining indices are unchanged.
func (b *Box) remove(i int) {
	switch b.kind {
	case value.ArrayKind:
		if i == len(b.kids)-1 {
			b.kids = b.kids[:i]
			return
		}
		b.kids[i] = nil
	case value.ObjectKind:
		b.kids = slices.Delete(b.kids, i, i+1)
	}
}

// Drop removes the child at key, which may be a path, disposes it and
// publishes from its former parent. Dropping something that does not exist
// does nothing.
func (b *Box) Drop(key any) error {
	if b.disposed {
		return ErrDisposed
	}
	segs, err := keypath.Parse(key)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("%w: nothing to drop", ErrInvalidTraversal)
	}
	parent, ok := b.find(segs[:len(segs)-1])
	if !ok {
		return nil
	}
	i, kid := parent.lookup(segs[len(segs)-1])
	if kid == nil {
		return nil
	}
	if err := parent.checkDepth(); err != nil {
		return err
	}
	parent.remove(i)
	kid.dispose(false)
	return parent.Publish()
}
