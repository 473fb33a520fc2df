package tjdecode

import (
	"strings"
	"testing"

	"github.com/turbojson/turbojson/internal/tjvalue"
	"github.com/turbojson/turbojson/tjerr"
)

func parse(t *testing.T, s string) *tjvalue.Value {
	t.Helper()
	v, err := Parse([]byte(s), Options{})
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", s, err)
	}
	return v
}

func TestParsePrimitives(t *testing.T) {
	if v := parse(t, "null"); v.Kind != tjvalue.KindNull {
		t.Fatalf("expected null, got %v", v.Kind)
	}
	if v := parse(t, "true"); v.Kind != tjvalue.KindBool || !v.Bool {
		t.Fatalf("expected true, got %+v", v)
	}
	if v := parse(t, "false"); v.Kind != tjvalue.KindBool || v.Bool {
		t.Fatalf("expected false, got %+v", v)
	}
	if v := parse(t, "42"); v.Kind != tjvalue.KindUint64 || v.Uint64 != 42 {
		t.Fatalf("expected uint64 42, got %+v", v)
	}
	if v := parse(t, "-42"); v.Kind != tjvalue.KindInt64 || v.Int64 != -42 {
		t.Fatalf("expected int64 -42, got %+v", v)
	}
	if v := parse(t, "3.5"); v.Kind != tjvalue.KindFloat64 || v.Float64 != 3.5 {
		t.Fatalf("expected float64 3.5, got %+v", v)
	}
}

func TestParseStringEscapes(t *testing.T) {
	v := parse(t, `"a\nb\tcé"`)
	if v.Str != "a\nb\tcé" {
		t.Fatalf("unexpected decoded string: %q", v.Str)
	}
}

func TestParseSurrogatePairEscape(t *testing.T) {
	v := parse(t, "\"\\uD83D\\uDE00\"")
	if v.Str != "\U0001F600" {
		t.Fatalf("unexpected decoded surrogate pair: %q", v.Str)
	}
}

func TestParseArrayAndObject(t *testing.T) {
	v := parse(t, `{"a":[1,2,3],"b":{"c":null}}`)
	if v.Kind != tjvalue.KindObject || len(v.Members) != 2 {
		t.Fatalf("unexpected object: %+v", v)
	}
	arr := v.Members[0].Value
	if arr.Kind != tjvalue.KindArray || len(arr.Elems) != 3 {
		t.Fatalf("unexpected array: %+v", arr)
	}
}

func TestParseDuplicateKeysPreserved(t *testing.T) {
	v := parse(t, `{"a":1,"a":2}`)
	if len(v.Members) != 2 {
		t.Fatalf("expected duplicate keys preserved, got %d members", len(v.Members))
	}
	if v.Members[0].Value.Uint64 != 1 || v.Members[1].Value.Uint64 != 2 {
		t.Fatalf("unexpected member values: %+v", v.Members)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse([]byte(""), Options{})
	assertDecodeClass(t, err, tjerr.EmptyInput)
}

func TestParseTrailingGarbage(t *testing.T) {
	_, err := Parse([]byte("1 2"), Options{})
	assertDecodeClass(t, err, tjerr.TrailingGarbage)
}

func TestParseDepthExceeded(t *testing.T) {
	deep := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	_, err := Parse([]byte(deep), Options{})
	assertDecodeClass(t, err, tjerr.DepthExceeded)
}

func TestParseDepthAtLimitSucceeds(t *testing.T) {
	doc := strings.Repeat("[", MaxDepth) + strings.Repeat("]", MaxDepth)
	if _, err := Parse([]byte(doc), Options{}); err != nil {
		t.Fatalf("expected depth %d to succeed, got %v", MaxDepth, err)
	}
}

func TestParseInvalidUTF8Surrogate(t *testing.T) {
	// raw 3-byte encoding of U+D800 inside a string literal.
	bad := append([]byte(`"`), 0xED, 0xA0, 0x80)
	bad = append(bad, '"')
	_, err := Parse(bad, Options{})
	assertDecodeClass(t, err, tjerr.InvalidUTF8)
}

func TestParseLeadingZeroRejected(t *testing.T) {
	_, err := Parse([]byte("01"), Options{})
	assertDecodeClass(t, err, tjerr.InvalidGrammar)
}

func TestParseUnterminatedString(t *testing.T) {
	_, err := Parse([]byte(`"abc`), Options{})
	assertDecodeClass(t, err, tjerr.UnterminatedValue)
}

func assertDecodeClass(t *testing.T, err error, want tjerr.FailureClass) {
	t.Helper()
	de, ok := err.(*tjerr.DecodeError)
	if !ok {
		t.Fatalf("expected *tjerr.DecodeError, got %T (%v)", err, err)
	}
	if de.Class != want {
		t.Fatalf("expected class %s, got %s", want, de.Class)
	}
}
