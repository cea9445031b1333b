// Package box implements a hierarchical, observable state container.
//
// # Overview
//
// A Box models a JSON-like value as a tree of addressable nodes. Scalars
// (null, boolean, number, string, date) live in leaf boxes; arrays and
// objects are boxes whose children are boxes. Every child keeps a
// non-owning reference to its parent, so a change anywhere can be
// published up to the root.
//
//	root := box.MustFrom(map[string]any{"items": []any{0, 1, 2}})
//	items, _ := root.Into("items")
//	items.Observe().Data(func(v *value.Value) {
//	    // receives the whole items array
//	})
//	one, _ := root.Into("items/1")
//	one.Set(55)
//
// # Navigation
//
// Into and With resolve an index, key or slash-delimited path. Missing
// children are materialized as undefined boxes and an undefined box turns
// into an array or an object according to the first step taken into it:
//
//	root := box.New()
//	leaf, _ := root.Into("items/0") // root is now an object, items an array
//	leaf.Set(1)                     // root holds {"items": [1]}
//
// Moving into a scalar, or into an array with a non-numeric key, fails with
// ErrInvalidTraversal. Find navigates without creating anything.
//
// # Publishing
//
// Set, Mix, Default, Sync and Drop publish after mutating. Publishing walks
// from the changed box to the root; observers at each level receive that
// level's current value on their data callbacks and one Sync descriptor
// {Path, Data} anchored at the changed box on their sync callbacks. A Sync
// applied to another tree of the same shape with Box.Sync replays the
// change there.
//
// Setting a value equal to the current one publishes nothing.
//
// # Disposal
//
// Replacing a container's value disposes its previous children. Disposal is
// depth-first: children first, then the box's observers receive an end
// event, then the parent link is cleared.
//
// # Thread Safety
//
// Boxes are not safe for concurrent use. Callbacks run synchronously and
// may mutate the tree; nested publishing is bounded by
// WithMaxPublishDepth.
package box
