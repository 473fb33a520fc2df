package turbojson

import "github.com/turbojson/turbojson/internal/tjencode"

// Encode serializes v to JSON under opt (spec §4.6-4.8). Every Go value
// with a native serializer (string, bool, the integer and float kinds,
// map[string]any, []any, the Date/Time/Datetime/UUID/Record/Fragment
// extension types, and *Value/Value trees) is handled directly; anything
// else is passed to fallback, whose return value is re-dispatched.
//
// A nil fallback makes any unsupported type an EncodeError with class
// UnsupportedType.
func Encode(v any, fallback Fallback, opt Option) ([]byte, error) {
	return tjencode.Encode(v, fallback, opt)
}

// EncodeDefault serializes v with no fallback and no options set,
// equivalent to Encode(v, nil, 0).
func EncodeDefault(v any) ([]byte, error) {
	return tjencode.Encode(v, nil, 0)
}
