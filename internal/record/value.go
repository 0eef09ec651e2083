package record

import "strconv"

// Kind discriminates the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns a lowercase name for k, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one (key, value) pair of an object. Objects are ordered slices
// of Member, not maps, so duplicate keys and document order survive
// decoding (I-REC-1 in SPEC_FULL §3).
type Member struct {
	Key   string
	Value Value
}

// Value is the closed sum type for a parsed field. The zero Value is
// KindNull.
type Value struct {
	kind Kind

	b   bool
	i   int64
	f   float64
	s   string
	arr []Value
	obj []Member

	// Quoted records whether a string value was quoted in its source
	// form (JSON string, or logfmt quoted value). Unquoted logfmt
	// scalars are type-inferred for display but remain semantically
	// string; Quoted distinguishes the two for formatting (SPEC_FULL
	// S4).
	Quoted bool

	// Display overrides Kind for formatting purposes only (SPEC_FULL
	// §4.3: "type inference is for display only"). An unquoted logfmt
	// scalar like `count=200` is semantically KindString (so filters and
	// queries compare/parse it as such, see Equal/AsFloat), but Display
	// is set to KindInt so the formatter can color it as a number.
	Display    Kind
	HasDisplay bool
}

// DisplayKind returns the Kind the formatter should render v as: Display
// if set, otherwise Kind().
func (v Value) DisplayKind() Kind {
	if v.kind == KindString && v.HasDisplay {
		return v.Display
	}

	return v.kind
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value. quoted should be true for values that
// arrived quoted in their source syntax.
func String(s string, quoted bool) Value { return Value{kind: KindString, s: s, Quoted: quoted} }

// Array returns an array Value.
func Array(vs []Value) Value { return Value{kind: KindArray, arr: vs} }

// Object returns an object Value from ordered members.
func Object(members []Member) Value { return Value{kind: KindObject, obj: members} }

// Kind reports v's variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns v's boolean payload. Only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns v's integer payload. Only meaningful when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns v's float payload. Only meaningful when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns v's string payload. Only meaningful when Kind() == KindString.
func (v Value) Str() string { return v.s }

// Elements returns v's array payload. Only meaningful when Kind() == KindArray.
func (v Value) Elements() []Value { return v.arr }

// Members returns v's object payload in document order. Only meaningful
// when Kind() == KindObject.
func (v Value) Members() []Member { return v.obj }

// Field returns the first member of an object Value whose key equals name,
// and whether it was found. Field addressing beyond a single literal name
// is implemented by package fieldpath.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	for _, m := range v.obj {
		if m.Key == name {
			return m.Value, true
		}
	}

	return Value{}, false
}

// AsString renders v as a string for comparisons that accept the "string
// form of a scalar" per SPEC_FULL §4.5. Arrays and objects have no string
// form and return ok=false.
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindBool:
		if v.b {
			return "true", true
		}

		return "false", true
	case KindInt:
		return strconv.FormatInt(v.i, 10), true
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64), true
	case KindNull:
		return "null", true
	default:
		return "", false
	}
}

// AsFloat attempts a numeric interpretation of v, including a runtime
// parse of string values (SPEC_FULL §4.5 "numeric operators require the
// value to parse as a number").
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}

// Equal reports whether v and other are the same value for filter/query
// comparisons, which operate on the string form (SPEC_FULL §4.5 "comparison
// operates on the resolved value" via string/numeric forms).
func (v Value) Equal(other Value) bool {
	vs, vok := v.AsString()
	os, ook := other.AsString()

	return vok && ook && vs == os
}
