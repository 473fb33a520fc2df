// Package tjvalue holds the decoder's output tree (Value) and the
// encoder's richer extension input types (Date, Time, Datetime, UUID,
// Record, Fragment). It has no dependents inside the module other than
// the decoder, the encoder, and the root turbojson package (which
// re-exports these types by alias) — kept as its own package so the
// decoder and encoder can share one tree definition without either
// depending on the public root package.
package tjvalue

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindFloat64
	KindString
	KindArray
	KindObject
)

// Value is the decoder's output tree. It never holds values outside the
// eight Kind variants above — the richer encoder input types (Date, Time,
// Datetime, UUID, Record, Fragment) have no Value representation; encoding
// them does not round-trip through Value, it serializes directly.
type Value struct {
	Kind    Kind
	Bool    bool
	Int64   int64
	Uint64  uint64
	Float64 float64
	Str     string
	Elems   []Value
	Members []Member
}

// Member is a single object entry. Object order is the order members were
// encountered; duplicate keys are preserved verbatim, never merged.
type Member struct {
	Key   string
	Value Value
}

// Null is the shared Value for a decoded JSON null.
var Null = Value{Kind: KindNull}

// String builds a string Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool builds a bool Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Int64 builds a signed-integer Value.
func Int64(v int64) Value { return Value{Kind: KindInt64, Int64: v} }

// Uint64 builds an unsigned-integer Value.
func Uint64(v uint64) Value { return Value{Kind: KindUint64, Uint64: v} }

// Float64 builds a float Value.
func Float64(v float64) Value { return Value{Kind: KindFloat64, Float64: v} }

// Array builds an array Value from its elements.
func Array(elems ...Value) Value { return Value{Kind: KindArray, Elems: elems} }

// Object builds an object Value from ordered members.
func Object(members ...Member) Value { return Value{Kind: KindObject, Members: members} }
