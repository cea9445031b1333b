package value

import "fmt"

// Kind is the discriminant of a Value.
type Kind int

const (
	UndefinedKind Kind = iota
	NullKind
	BoolKind
	NumberKind
	StringKind
	DateKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		UndefinedKind: "undefined",
		NullKind:      "null",
		BoolKind:      "boolean",
		NumberKind:    "number",
		StringKind:    "string",
		DateKind:      "date",
		ArrayKind:     "array",
		ObjectKind:    "object",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"undefined": UndefinedKind,
		"null":      NullKind,
		"boolean":   BoolKind,
		"number":    NumberKind,
		"string":    StringKind,
		"date":      DateKind,
		"array":     ArrayKind,
		"object":    ObjectKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		UndefinedKind,
		NullKind,
		BoolKind,
		NumberKind,
		StringKind,
		DateKind,
		ArrayKind,
		ObjectKind,
	}
}

// IsLeaf reports whether values of this kind hold no children.
func (k Kind) IsLeaf() bool {
	switch k {
	case ArrayKind, ObjectKind:
		return false
	default:
		return true
	}
}
