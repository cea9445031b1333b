package codec

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sinclairzx81/statebox/value"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"y", YAMLFormat},
		{"yaml", YAMLFormat},
		{"yml", YAMLFormat},
		{"j", JSONFormat},
		{"json", JSONFormat},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("%s: got %s want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseFormat("tony"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
	var f Format
	if err := f.UnmarshalText([]byte("json")); err != nil || f != JSONFormat {
		t.Errorf("unmarshal text: %v %v", f, err)
	}
	if FormatOf("x/doc.json") != JSONFormat || FormatOf("doc.yml") != YAMLFormat || FormatOf("-") != YAMLFormat {
		t.Error("unexpected FormatOf result")
	}
}

func TestDecodeYAMLOrder(t *testing.T) {
	v, err := Decode(YAMLFormat, []byte("b: 1\na:\n- x\n- 2\n- null\nc: {z: true, y: 1.5}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, v.Keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"z", "y"}, v.Get("c").Keys); diff != "" {
		t.Errorf("nested keys (-want +got):\n%s", diff)
	}
	want := map[string]any{
		"b": 1.0,
		"a": []any{"x", 2.0, nil},
		"c": map[string]any{"z": true, "y": 1.5},
	}
	if diff := cmp.Diff(want, v.Interface()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeYAMLScalars(t *testing.T) {
	tests := []struct {
		in   string
		kind value.Kind
	}{
		{"5", value.NumberKind},
		{"hello", value.StringKind},
		{"true", value.BoolKind},
		{"null", value.NullKind},
		{"", value.NullKind},
		{"!!timestamp 2001-12-14", value.DateKind},
		{`{"a": 1}`, value.ObjectKind},
		{"[1, 2]", value.ArrayKind},
	}
	for _, tt := range tests {
		v, err := Decode(YAMLFormat, []byte(tt.in))
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if v.Kind != tt.kind {
			t.Errorf("%q: got %s want %s", tt.in, v.Kind, tt.kind)
		}
	}
	v, err := Decode(YAMLFormat, []byte("1: a\n"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Get("1").String != "a" {
		t.Errorf("integer key not formatted: %v", v.Interface())
	}
}

func TestDecodeDate(t *testing.T) {
	v, err := Decode(YAMLFormat, []byte("!!timestamp 2001-12-14"))
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2001, 12, 14, 0, 0, 0, 0, time.UTC); !v.Date.Equal(want) {
		t.Errorf("got %v", v.Date)
	}
}

func TestEncodeJSON(t *testing.T) {
	v, err := Decode(JSONFormat, []byte(`{"b":1,"a":[1,"x"],"u":null}`))
	if err != nil {
		t.Fatal(err)
	}
	v.Put("gone", value.Undefined())
	got, err := Encode(JSONFormat, v)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    \"x\"\n  ],\n  \"u\": null\n}\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	docs := []string{
		`{"b":1,"a":[1,"x",[true,null]],"c":{"z":{},"y":[]}}`,
		`[{"k":"v"},2.5,"s"]`,
		`"just a string"`,
	}
	for _, d := range docs {
		v, err := Decode(JSONFormat, []byte(d))
		if err != nil {
			t.Fatal(err)
		}
		y, err := Encode(YAMLFormat, v)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Decode(YAMLFormat, y)
		if err != nil {
			t.Fatalf("%s: %v", y, err)
		}
		if !value.Equal(v, back) {
			t.Errorf("round trip of %s gave %v via\n%s", d, back.Interface(), y)
		}
		if value.KindOf(v) == value.ObjectKind {
			if diff := cmp.Diff(v.Keys, back.Keys); diff != "" {
				t.Errorf("key order (-want +got):\n%s", diff)
			}
		}
	}
}

func TestEncodeYAMLOmitsUndefined(t *testing.T) {
	v := value.FromKeyVals([]value.KeyVal{
		{Key: "a", Val: value.FromInt(1)},
		{Key: "gone", Val: value.Undefined()},
		{Key: "list", Val: value.FromSlice([]*value.Value{nil, value.FromInt(2)})},
	})
	var buf bytes.Buffer
	if err := Write(YAMLFormat, &buf, v); err != nil {
		t.Fatal(err)
	}
	back, err := Read(YAMLFormat, &buf)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": 1.0, "list": []any{nil, 2.0}}
	if diff := cmp.Diff(want, back.Interface()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
