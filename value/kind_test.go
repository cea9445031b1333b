package value

import "testing"

func TestKindText(t *testing.T) {
	for _, k := range Kinds() {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Kind
		if err := got.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if got != k {
			t.Errorf("round trip %s gave %s", k, got)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("function")); err == nil {
		t.Errorf("expected error for unknown kind")
	}
}

func TestKindOfNil(t *testing.T) {
	if KindOf(nil) != UndefinedKind {
		t.Errorf("KindOf(nil) = %s", KindOf(nil))
	}
	if (*Value)(nil).Len() != 0 {
		t.Errorf("nil Len() != 0")
	}
}
