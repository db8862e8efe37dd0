package model

// Kind tags the variant held by a Value
type Kind uint8

const (
	KindMissing Kind = iota // Empty cell or NA token
	KindText                // Free text, the only kind the matcher scans
	KindScalar              // Any other scalar (number, bool) kept in textual form
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindScalar:
		return "scalar"
	default:
		return "missing"
	}
}

// Value is a single table cell
type Value struct {
	kind Kind
	repr string
}

// Text returns a text cell
func Text(s string) Value {
	return Value{kind: KindText, repr: s}
}

// Missing returns an empty cell
func Missing() Value {
	return Value{kind: KindMissing}
}

// Scalar returns a non-text cell whose textual representation is repr
func Scalar(repr string) Value {
	return Value{kind: KindScalar, repr: repr}
}

// Kind returns the variant of the cell
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the cell is empty
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// AsText returns the cell text and true only for text cells
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.repr, true
}

// String returns the textual representation (empty for missing cells)
func (v Value) String() string {
	if v.kind == KindMissing {
		return ""
	}
	return v.repr
}
