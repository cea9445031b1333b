package box

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sinclairzx81/statebox/value"
)

type recorder struct {
	data  []any
	syncs []Sync
	ends  []any
}

func record(b *Box) *recorder {
	r := &recorder{}
	b.Observe().
		Data(func(v *value.Value) { r.data = append(r.data, v.Interface()) }).
		Sync(func(s Sync) { r.syncs = append(r.syncs, s) }).
		End(func(v *value.Value) { r.ends = append(r.ends, v.Interface()) })
	return r
}

func mustInto(t *testing.T, b *Box, key any) *Box {
	t.Helper()
	res, err := b.Into(key)
	if err != nil {
		t.Fatalf("into %v: %v", key, err)
	}
	return res
}

func TestPublishValue(t *testing.T) {
	b := New()
	r := record(b)
	if err := b.Set(123); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{123.0}, r.data); diff != "" {
		t.Errorf("data (-want +got):\n%s", diff)
	}
	if len(r.syncs) != 1 || r.syncs[0].Path != "" || r.syncs[0].Data.Number != 123 {
		t.Errorf("unexpected syncs %v", r.syncs)
	}
}

func TestPublishAncestors(t *testing.T) {
	b := MustFrom(map[string]any{"items": []any{0, 1, 2, 3}})
	root := record(b)
	items := record(mustInto(t, b, "items"))
	if err := mustInto(t, b, "items/1").Set(55); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{[]any{0.0, 55.0, 2.0, 3.0}}, items.data); diff != "" {
		t.Errorf("items data (-want +got):\n%s", diff)
	}
	want := map[string]any{"items": []any{0.0, 55.0, 2.0, 3.0}}
	if diff := cmp.Diff([]any{want}, root.data); diff != "" {
		t.Errorf("root data (-want +got):\n%s", diff)
	}
	for _, r := range []*recorder{root, items} {
		if len(r.syncs) != 1 {
			t.Fatalf("expected one sync, got %d", len(r.syncs))
		}
		if r.syncs[0].Path != "items/1" || r.syncs[0].Data.Number != 55 {
			t.Errorf("unexpected sync %+v", r.syncs[0])
		}
	}
}

func TestPublishIdempotentSet(t *testing.T) {
	tests := []struct {
		name    string
		initial any
		set     any
		path    string
		events  int
	}{
		{"same scalar", map[string]any{"a": 1}, 1, "a", 0},
		{"same object", map[string]any{"a": map[string]any{"b": 1}}, map[string]any{"b": 1}, "a", 0},
		{"different scalar", map[string]any{"a": 1}, 2, "a", 1},
		{"scalar to object", map[string]any{"a": 1}, map[string]any{"b": 1}, "a", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustFrom(tt.initial)
			root := record(b)
			leaf := mustInto(t, b, tt.path)
			own := record(leaf)
			if err := leaf.Set(tt.set); err != nil {
				t.Fatal(err)
			}
			if len(root.data) != tt.events || len(own.data) != tt.events {
				t.Errorf("expected %d events per level, got root=%d leaf=%d", tt.events, len(root.data), len(own.data))
			}
		})
	}
}

func TestPublishPerLevel(t *testing.T) {
	b := New()
	levels := []*recorder{record(b)}
	cur := b
	for _, k := range []string{"a", "b", "c"} {
		cur = mustInto(t, cur, k)
		levels = append(levels, record(cur))
	}
	if err := cur.Set("x"); err != nil {
		t.Fatal(err)
	}
	for i, r := range levels {
		if len(r.data) != 1 {
			t.Errorf("level %d: expected one event, got %d", i, len(r.data))
		}
	}
}

func TestObserverDispose(t *testing.T) {
	b := New()
	count := 0
	o := b.Observe().Data(func(*value.Value) { count++ })
	other := record(b)
	if err := b.Set(1); err != nil {
		t.Fatal(err)
	}
	o.Dispose()
	if err := b.Set(2); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 callback, got %d", count)
	}
	if len(other.data) != 2 {
		t.Errorf("expected 2 callbacks on remaining observer, got %d", len(other.data))
	}
}

func TestCallbacksReceiveCopies(t *testing.T) {
	b := MustFrom(map[string]any{"a": []any{1}})
	var first, second *value.Value
	b.Observe().
		Data(func(v *value.Value) {
			first = v
			v.Fields[0].Elems[0].Number = 99
		}).
		Data(func(v *value.Value) { second = v })
	if err := mustInto(t, b, "a/0").Set(2); err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("callbacks shared one value")
	}
	if got := second.Get("a").Index(0).Number; got != 2 {
		t.Errorf("second callback saw %v", got)
	}
	if got := mustInto(t, b, "a/0").Interface(); got != 2.0 {
		t.Errorf("box mutated through callback: %v", got)
	}
}

func TestSubscribeDuringPublish(t *testing.T) {
	b := New()
	late := 0
	b.Observe().Data(func(*value.Value) {
		b.Observe().Data(func(*value.Value) { late++ })
	})
	if err := b.Set(1); err != nil {
		t.Fatal(err)
	}
	if late != 0 {
		t.Errorf("observer added during publish was called %d times", late)
	}
	if err := b.Set(2); err != nil {
		t.Fatal(err)
	}
	if late != 1 {
		t.Errorf("expected late observer to run once, got %d", late)
	}
}

func TestReentrancyBound(t *testing.T) {
	b := New(WithMaxPublishDepth(5))
	count := 0
	var seen []any
	var lastErr error
	b.Observe().Data(func(v *value.Value) {
		count++
		seen = append(seen, v.Interface())
		lastErr = b.Set(v.Number + 1)
	})
	if err := b.Set(0); err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("expected 5 nested callbacks, got %d", count)
	}
	if !errors.Is(lastErr, ErrReentrancy) {
		t.Errorf("expected ErrReentrancy, got %v", lastErr)
	}
	// the rejected set is not applied, so observers saw the final value
	if got := b.Interface(); got != 4.0 {
		t.Errorf("expected final value 4, got %v", got)
	}
	if diff := cmp.Diff([]any{0.0, 1.0, 2.0, 3.0, 4.0}, seen); diff != "" {
		t.Errorf("seen (-want +got):\n%s", diff)
	}
	// depth unwinds after the outer publish
	count = 0
	if err := b.Set(100); err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("expected 5 nested callbacks after unwinding, got %d", count)
	}
}

func TestReentrancyLeavesTreeIntact(t *testing.T) {
	b := MustFrom(map[string]any{"a": map[string]any{"x": 1}, "list": []any{1, 2}}, WithMaxPublishDepth(1))
	a := mustInto(t, b, "a")
	ended := 0
	mustInto(t, a, "x").Observe().End(func(*value.Value) { ended++ })
	var errs []error
	b.Observe().Data(func(*value.Value) {
		errs = append(errs,
			a.Set(3),
			a.Mix(map[string]any{"y": 2}),
			b.Drop("list/1"))
	})
	if err := mustInto(t, b, "flag").Set(true); err != nil {
		t.Fatal(err)
	}
	for i, err := range errs {
		if !errors.Is(err, ErrReentrancy) {
			t.Errorf("%d: expected ErrReentrancy, got %v", i, err)
		}
	}
	want := map[string]any{"a": map[string]any{"x": 1.0}, "list": []any{1.0, 2.0}, "flag": true}
	if diff := cmp.Diff(want, b.Interface()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if ended != 0 {
		t.Errorf("children released by a rejected set: %d", ended)
	}
}

func TestDisposeOrder(t *testing.T) {
	b := MustFrom(map[string]any{"a": map[string]any{"b": 1}})
	var order []string
	for _, p := range []string{"a/b", "a", ""} {
		x := mustInto(t, b, p)
		x.Observe().End(func(*value.Value) {
			if x.Parent() == nil && x != b {
				t.Errorf("%q detached before its end event", p)
			}
			order = append(order, x.Path())
		})
	}
	b.Dispose()
	b.Dispose()
	if diff := cmp.Diff([]string{"a/b", "a", ""}, order); diff != "" {
		t.Errorf("end order (-want +got):\n%s", diff)
	}
	if !b.Disposed() || !mustDisposed(b) {
		t.Error("expected box disposed")
	}
	if err := b.Set(1); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
	if _, err := b.Into("a"); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
}

func mustDisposed(b *Box) bool {
	for _, k := range b.kids {
		if k != nil && !k.Disposed() {
			return false
		}
	}
	return true
}

func TestDisposeDetaches(t *testing.T) {
	b := MustFrom(map[string]any{"a": 1, "b": 2})
	root := record(b)
	a := mustInto(t, b, "a")
	a.Dispose()
	if diff := cmp.Diff([]string{"b"}, b.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if len(root.data) != 0 {
		t.Errorf("dispose published %d events", len(root.data))
	}
	if a.Parent() != nil {
		t.Error("disposed box kept its parent")
	}
}

func TestSetReleasesChildren(t *testing.T) {
	b := MustFrom(map[string]any{"a": map[string]any{"b": 1}})
	child := record(mustInto(t, b, "a/b"))
	old := mustInto(t, b, "a/b")
	if err := b.Set(map[string]any{"a": 2}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{1.0}, child.ends); diff != "" {
		t.Errorf("ends (-want +got):\n%s", diff)
	}
	if !old.Disposed() {
		t.Error("replaced child not disposed")
	}
}

func TestDrop(t *testing.T) {
	tests := []struct {
		name    string
		initial any
		drops   []any
		want    any
	}{
		{"array interior", []any{0, 1, 2}, []any{1}, []any{0.0, nil, 2.0}},
		{"array last", []any{0, 1, 2}, []any{2}, []any{0.0, 1.0}},
		{"object key", map[string]any{"a": 1, "b": 2}, []any{"a"}, map[string]any{"b": 2.0}},
		{"missing", map[string]any{"a": 1}, []any{"x", "x/y", 4}, map[string]any{"a": 1.0}},
		{
			"paths",
			map[string]any{
				"customer": map[string]any{"firstname": "dave", "lastname": "smith"},
				"items":    []any{0, 1, 2},
			},
			[]any{"customer/firstname", "items/2"},
			map[string]any{
				"customer": map[string]any{"lastname": "smith"},
				"items":    []any{0.0, 1.0},
			},
		},
		{
			"iterative",
			map[string]any{
				"customer": map[string]any{"firstname": "dave"},
				"items":    []any{0, 1, 2},
			},
			[]any{"customer/firstname", "customer", "items/2", "items"},
			map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustFrom(tt.initial)
			for _, d := range tt.drops {
				if err := b.Drop(d); err != nil {
					t.Fatalf("drop %v: %v", d, err)
				}
			}
			if diff := cmp.Diff(tt.want, b.Interface()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestDropHoleLength(t *testing.T) {
	b := MustFrom([]any{0, 1, 2})
	if err := b.Drop(1); err != nil {
		t.Fatal(err)
	}
	if n := b.Get().Len(); n != 3 {
		t.Errorf("expected length 3, got %d", n)
	}
	if diff := cmp.Diff([]string{"0", "2"}, b.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestDropNotifies(t *testing.T) {
	b := MustFrom(map[string]any{"a": map[string]any{"b": 1, "c": 2}})
	root := record(b)
	dropped := record(mustInto(t, b, "a/b"))
	if err := b.Drop("a/b"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{map[string]any{"a": map[string]any{"c": 2.0}}}, root.data); diff != "" {
		t.Errorf("root data (-want +got):\n%s", diff)
	}
	if len(root.syncs) != 1 || root.syncs[0].Path != "a" {
		t.Errorf("unexpected syncs %+v", root.syncs)
	}
	if diff := cmp.Diff([]any{1.0}, dropped.ends); diff != "" {
		t.Errorf("ends (-want +got):\n%s", diff)
	}
	if err := b.Drop(""); !errors.Is(err, ErrInvalidTraversal) {
		t.Errorf("expected ErrInvalidTraversal, got %v", err)
	}
}

func TestSync(t *testing.T) {
	b := New()
	if err := b.Sync(Sync{Path: "a/b", Data: value.FromInt(5)}); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": map[string]any{"b": 5.0}}
	if diff := cmp.Diff(want, b.Interface()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSyncReplay(t *testing.T) {
	src := New()
	dst := New()
	src.Observe().Sync(func(s Sync) {
		if err := dst.Sync(s); err != nil {
			t.Fatal(err)
		}
	})
	steps := []func() error{
		func() error { return mustInto(t, src, "customer/firstname").Set("dave") },
		func() error { return mustInto(t, src, "items/3").Set(map[string]any{"qty": 2}) },
		func() error { return mustInto(t, src, "customer").Mix(map[string]any{"lastname": "smith"}) },
		func() error { return src.Drop("items/3") },
		func() error { return mustInto(t, src, "flag").Set(true) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if !value.Equal(src.Get(), dst.Get()) {
			t.Fatalf("step %d: trees diverged\nsrc %v\ndst %v", i, src.Interface(), dst.Interface())
		}
	}
}
