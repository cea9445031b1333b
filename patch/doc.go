// Package patch works with the Sync descriptors published by a box tree.
//
// A Recorder captures the descriptors published by a tree so that they can
// be replayed onto another tree of the same shape. Diff computes the
// descriptors that turn one value into another. ToJSONPatch and ApplyJSON
// translate descriptors into RFC 6902 operations, and TextDiff renders a
// line diff of two values for display.
package patch
