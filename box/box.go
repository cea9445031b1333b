package box

import (
	"fmt"
	"slices"

	"github.com/sinclairzx81/statebox/keypath"
	"github.com/sinclairzx81/statebox/value"
)

// Box is a node in a state tree. A box either holds a scalar value or a
// collection of child boxes (an array with possible holes, or an object in
// insertion order). Children hold a non-owning reference to the parent
// whose collection currently contains them.
type Box struct {
	id   string
	name string
	kind value.Kind

	scalar *value.Value
	kids   []*Box

	parent    *Box
	observers []*Observer

	opts     *options
	depth    int
	disposed bool
}

// New returns an undefined root box.
func New(opts ...Option) *Box {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Box{opts: o}
}

// From returns a root box holding initial. See value.From for the
// accepted Go values; a *Box, nested or not, is read through its Get
// method.
func From(initial any, opts ...Option) (*Box, error) {
	b := New(opts...)
	if err := b.SetSilent(initial); err != nil {
		return nil, err
	}
	return b, nil
}

func MustFrom(initial any, opts ...Option) *Box {
	b, err := From(initial, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Box) newChild(name string) *Box {
	return &Box{name: name, parent: b, opts: b.options()}
}

// ID returns an identifier unique to this box.
func (b *Box) ID() string {
	if b.id == "" {
		b.id = b.options().newID()
	}
	return b.id
}

// Name returns the key or index under which the parent holds this box, or
// "" for a root.
func (b *Box) Name() string {
	if b.parent == nil {
		return ""
	}
	return b.name
}

func (b *Box) Type() value.Kind {
	return b.kind
}

func (b *Box) Parent() *Box {
	return b.parent
}

func (b *Box) Root() *Box {
	res := b
	for res.parent != nil {
		res = res.parent
	}
	return res
}

func (b *Box) Disposed() bool {
	return b.disposed
}

// Inner returns the child boxes in order, skipping array holes.
func (b *Box) Inner() []*Box {
	res := make([]*Box, 0, len(b.kids))
	for _, k := range b.kids {
		if k != nil {
			res = append(res, k)
		}
	}
	return res
}

// Keys returns the names of the child boxes in order, skipping array holes.
func (b *Box) Keys() []string {
	res := make([]string, 0, len(b.kids))
	for _, k := range b.kids {
		if k != nil {
			res = append(res, k.name)
		}
	}
	return res
}

// Path returns the slash-delimited path from the root to this box. Names
// are not escaped: when an ancestor's name is empty or contains the
// separator the path leads elsewhere (see Addressable), and descriptors
// published from below it do not replay onto the same box.
func (b *Box) Path() string {
	var names []string
	for cur := b; cur.parent != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	slices.Reverse(names)
	return keypath.Join(names...)
}

// Addressable reports whether Path leads back to this box.
func (b *Box) Addressable() bool {
	for cur := b; cur.parent != nil; cur = cur.parent {
		if !keypath.Addressable(cur.name) {
			return false
		}
	}
	return true
}

// Get returns a deep copy of the value held by this box and its
// descendants.
func (b *Box) Get() *value.Value {
	switch b.kind {
	case value.UndefinedKind:
		return value.Undefined()
	case value.ArrayKind:
		elems := make([]*value.Value, len(b.kids))
		for i, k := range b.kids {
			if k == nil {
				elems[i] = value.Undefined()
				continue
			}
			elems[i] = k.Get()
		}
		return value.FromSlice(elems)
	case value.ObjectKind:
		res := &value.Value{
			Kind:   value.ObjectKind,
			Keys:   make([]string, len(b.kids)),
			Fields: make([]*value.Value, len(b.kids)),
		}
		for i, k := range b.kids {
			res.Keys[i] = k.name
			res.Fields[i] = k.Get()
		}
		return res
	default:
		return value.Clone(b.scalar)
	}
}

// Interface returns the value held by this box as native Go values.
func (b *Box) Interface() any {
	return b.Get().Interface()
}

// Set replaces the value of this box and publishes the change. Setting a
// value equal to the current one does nothing. The new value is converted
// before any existing children are released, so a value that cannot be
// represented leaves the box untouched.
func (b *Box) Set(x any) error {
	return b.set(x, true)
}

// SetSilent is Set without publishing.
func (b *Box) SetSilent(x any) error {
	return b.set(x, false)
}

func (b *Box) set(x any, notify bool) error {
	if b.disposed {
		return ErrDisposed
	}
	v, err := value.From(x)
	if err != nil {
		return err
	}
	return b.setValue(v, notify)
}

func (b *Box) setValue(v *value.Value, notify bool) error {
	if value.Equal(b.Get(), v) {
		return nil
	}
	if notify {
		if err := b.checkDepth(); err != nil {
			return err
		}
	}
	b.releaseChildren()
	b.kind = value.KindOf(v)
	switch b.kind {
	case value.ArrayKind:
		b.kids = make([]*Box, len(v.Elems))
		for i, e := range v.Elems {
			kid := b.newChild(keypath.IndexSegment(i).String())
			kid.setValue(e, false)
			b.kids[i] = kid
		}
	case value.ObjectKind:
		b.kids = make([]*Box, len(v.Keys))
		for i, k := range v.Keys {
			kid := b.newChild(k)
			kid.setValue(v.Fields[i], false)
			b.kids[i] = kid
		}
	case value.UndefinedKind:
	default:
		b.scalar = value.Clone(v)
	}
	if notify {
		return b.Publish()
	}
	return nil
}

func (b *Box) releaseChildren() {
	kids := b.kids
	b.kids = nil
	b.scalar = nil
	for _, k := range kids {
		if k != nil {
			k.dispose(false)
		}
	}
}

// Mix merges x onto the current value (see value.Merge) and sets the
// result.
func (b *Box) Mix(x any) error {
	if b.disposed {
		return ErrDisposed
	}
	v, err := value.From(x)
	if err != nil {
		return err
	}
	return b.setValue(value.Merge(b.Get(), v), true)
}

// Default sets x only when the box is currently undefined.
func (b *Box) Default(x any) error {
	if b.kind != value.UndefinedKind {
		return nil
	}
	return b.Set(x)
}

// Into moves into the child named by key, which may be an index, a key or
// a slash-delimited path. Missing children are created undefined, and an
// undefined box becomes an array or object depending on the first step
// taken into it. Creating an array element above the tree's maximum index
// (see WithMaxIndex) fails with ErrInvalidTraversal.
func (b *Box) Into(key any) (*Box, error) {
	segs, err := keypath.Parse(key)
	if err != nil {
		return nil, err
	}
	cur := b
	for _, seg := range segs {
		next, err := cur.step(seg)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// With moves into the box at path. An empty path returns b.
func (b *Box) With(path string) (*Box, error) {
	return b.Into(path)
}

func (b *Box) step(seg keypath.Segment) (*Box, error) {
	if b.disposed {
		return nil, ErrDisposed
	}
	if seg.Kind == keypath.Index && b.kind != value.ObjectKind && seg.Index >= len(b.kids) {
		if limit := b.options().maxIndex; seg.Index > limit {
			return nil, fmt.Errorf("%w: index %d exceeds %d at %q", ErrInvalidTraversal, seg.Index, limit, b.Path())
		}
	}
	if b.kind == value.UndefinedKind {
		b.kids = nil
		b.kind = value.ObjectKind
		if seg.Kind == keypath.Index {
			b.kind = value.ArrayKind
		}
	}
	switch b.kind {
	case value.ArrayKind:
		if seg.Kind != keypath.Index {
			return nil, fmt.Errorf("%w: cannot move into an array with key %q", ErrInvalidTraversal, seg.Key)
		}
		if n := seg.Index + 1 - len(b.kids); n > 0 {
			b.kids = append(b.kids, make([]*Box, n)...)
		}
		if b.kids[seg.Index] == nil {
			b.kids[seg.Index] = b.newChild(seg.String())
		}
		return b.kids[seg.Index], nil
	case value.ObjectKind:
		name := seg.String()
		if _, k := b.child(name); k != nil {
			return k, nil
		}
		k := b.newChild(name)
		b.kids = append(b.kids, k)
		return k, nil
	default:
		return nil, fmt.Errorf("%w: cannot move into a %s value at %q", ErrInvalidTraversal, b.kind, b.Path())
	}
}

func (b *Box) child(name string) (int, *Box) {
	for i, k := range b.kids {
		if k != nil && k.name == name {
			return i, k
		}
	}
	return -1, nil
}

func (b *Box) lookup(seg keypath.Segment) (int, *Box) {
	switch b.kind {
	case value.ArrayKind:
		if seg.Kind != keypath.Index || seg.Index >= len(b.kids) {
			return -1, nil
		}
		return seg.Index, b.kids[seg.Index]
	case value.ObjectKind:
		return b.child(seg.String())
	default:
		return -1, nil
	}
}

// Find returns the box at path without creating anything.
func (b *Box) Find(path string) (*Box, bool) {
	segs, err := keypath.Parse(path)
	if err != nil {
		return nil, false
	}
	return b.find(segs)
}

func (b *Box) find(segs []keypath.Segment) (*Box, bool) {
	cur := b
	for _, seg := range segs {
		_, next := cur.lookup(seg)
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
