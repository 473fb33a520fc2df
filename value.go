package turbojson

import "github.com/turbojson/turbojson/internal/tjvalue"

// Kind identifies the variant held by a Value.
type Kind = tjvalue.Kind

// The Kind variants a decoded Value can hold.
const (
	KindNull    = tjvalue.KindNull
	KindBool    = tjvalue.KindBool
	KindInt64   = tjvalue.KindInt64
	KindUint64  = tjvalue.KindUint64
	KindFloat64 = tjvalue.KindFloat64
	KindString  = tjvalue.KindString
	KindArray   = tjvalue.KindArray
	KindObject  = tjvalue.KindObject
)

// Value is the decoder's output tree (spec §4.1). It is also a valid
// Encode input: encoding a *Value serializes the tree verbatim without
// going through the fallback machinery.
type Value = tjvalue.Value

// Member is a single object entry, in encounter order.
type Member = tjvalue.Member

// Null is the shared Value for a decoded JSON null.
var Null = tjvalue.Null

// String builds a string Value.
func String(s string) Value { return tjvalue.String(s) }

// Bool builds a bool Value.
func Bool(b bool) Value { return tjvalue.Bool(b) }

// Int64 builds a signed-integer Value.
func Int64(v int64) Value { return tjvalue.Int64(v) }

// Uint64 builds an unsigned-integer Value.
func Uint64(v uint64) Value { return tjvalue.Uint64(v) }

// Float64 builds a float Value.
func Float64(v float64) Value { return tjvalue.Float64(v) }

// Array builds an array Value from its elements.
func Array(elems ...Value) Value { return tjvalue.Array(elems...) }

// Object builds an object Value from ordered members.
func Object(members ...Member) Value { return tjvalue.Object(members...) }
