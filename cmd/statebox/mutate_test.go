package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/value"

	"github.com/scott-cotton/cli"
)

func TestMutations(t *testing.T) {
	tests := []struct {
		name string
		m    mutation
		path string
		arg  string
		want any
	}{
		{"set", setMutation, "c/b", "5", map[string]any{"a": 1.0, "c": map[string]any{"b": 5.0}, "items": []any{1.0}}},
		{"mix", mixMutation, "items", "[2]", map[string]any{"a": 1.0, "items": []any{1.0, 2.0}}},
		{"default set", defaultMutation, "c", "x", map[string]any{"a": 1.0, "c": "x", "items": []any{1.0}}},
		{"default kept", defaultMutation, "a", "x", map[string]any{"a": 1.0, "items": []any{1.0}}},
		{"drop", dropMutation, "a", "", map[string]any{"items": []any{1.0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := box.MustFrom(map[string]any{"a": 1, "items": []any{1}})
			var arg *value.Value
			if tt.m.hasArg {
				var err error
				arg, err = parseArg(tt.arg)
				if err != nil {
					t.Fatal(err)
				}
			}
			if err := tt.m.apply(root, tt.path, arg); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, root.Interface()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileArg(t *testing.T) {
	if f, err := fileArg([]string{"p"}, 1); err != nil || f != "" {
		t.Errorf("got %q %v", f, err)
	}
	if f, err := fileArg([]string{"p", "doc.yaml"}, 1); err != nil || f != "doc.yaml" {
		t.Errorf("got %q %v", f, err)
	}
	if _, err := fileArg([]string{"p", "v", "x", "y"}, 2); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestParseArg(t *testing.T) {
	tests := map[string]any{
		"5":           5.0,
		"hello":       "hello",
		"true":        true,
		"[1, x]":      []any{1.0, "x"},
		`{"k": null}`: map[string]any{"k": nil},
	}
	for in, want := range tests {
		v, err := parseArg(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if diff := cmp.Diff(want, v.Interface()); diff != "" {
			t.Errorf("%q (-want +got):\n%s", in, diff)
		}
	}
	if _, err := parseArg("{a: [1"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
}
