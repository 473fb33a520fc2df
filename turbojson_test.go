package turbojson

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEncode(t *testing.T, v any, opt Option) string {
	t.Helper()
	out, err := Encode(v, nil, opt)
	if err != nil {
		t.Fatalf("Encode(%#v) returned error: %v", v, err)
	}
	return string(out)
}

// Scenario 1 (spec §8): object with mixed value types, insertion order
// preserved.
func TestScenarioMixedObject(t *testing.T) {
	v := Object(
		Member{Key: "a", Value: Array(Uint64(81891289), Float64(8919812.190129012))},
		Member{Key: "b", Value: Bool(false)},
		Member{Key: "c", Value: Null},
		Member{Key: "d", Value: String("東京")},
	)
	got := mustEncode(t, &v, 0)
	want := `{"a":[81891289,8919812.190129012],"b":false,"c":null,"d":"東京"}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Scenario 2: naive datetime under STRICT_INTEGER|NAIVE_UTC.
func TestScenarioNaiveDatetime(t *testing.T) {
	tm := time.Date(2000, time.January, 1, 2, 3, 4, 0, time.UTC)
	dt := Datetime{Date: NewDate(tm), Time: NewTime(tm), Offset: nil}
	got := mustEncode(t, []any{1, dt}, StrictInteger|NaiveUTC)
	want := `[1,"2000-01-01T02:03:04+00:00"]`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Scenario 3: date keys under NON_STR_KEYS|SORT_KEYS.
func TestScenarioDateKeys(t *testing.T) {
	d5 := NewDate(time.Date(1970, time.January, 5, 0, 0, 0, 0, time.UTC))
	d3 := NewDate(time.Date(1970, time.January, 3, 0, 0, 0, 0, time.UTC))
	m := map[any]any{d5: 2, d3: 3, "other": 1}
	got, err := Encode(m, nil, NonStrKeys|SortKeys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"1970-01-03":3,"1970-01-05":2,"other":1}`
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Scenario 4: UUID key under NON_STR_KEYS.
func TestScenarioUUIDKey(t *testing.T) {
	u := UUID{0x72, 0x02, 0xd1, 0x15, 0x7f, 0xf3, 0x4c, 0x81, 0xa7, 0xc1, 0x2a, 0x1f, 0x06, 0x7b, 0x1e, 0xce}
	m := map[any]any{u: true}
	got, err := Encode(m, nil, NonStrKeys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"7202d115-7ff3-4c81-a7c1-2a1f067b1ece":true}`
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Scenario 5: trailing whitespace is fine, trailing garbage is not.
func TestScenarioTrailingWhitespace(t *testing.T) {
	v, err := Decode([]byte("{}\n\t "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindObject || len(v.Members) != 0 {
		t.Fatalf("expected empty object, got %+v", v)
	}

	if _, err := Decode([]byte("{}\n\t a")); err == nil {
		t.Fatal("expected trailing garbage to fail")
	}
}

// Scenario 6: NaN encodes to null; decoding "NaN" is not valid JSON.
func TestScenarioNaN(t *testing.T) {
	var zero float64
	nan := zero / zero
	got := mustEncode(t, nan, 0)
	if got != "null" {
		t.Fatalf("expected null, got %q", got)
	}

	if _, err := Decode([]byte("[NaN]")); err == nil {
		t.Fatal("expected DecodeError for NaN literal")
	}
}

// Scenario 7: a leading quote inside a string gets escaped, not
// misread as string termination.
func TestScenarioEscapedLeadingQuote(t *testing.T) {
	got := mustEncode(t, `"aaaaaaabb`, 0)
	want := `"\"aaaaaaabb"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBoundaryIntegers(t *testing.T) {
	got := mustEncode(t, int64(9223372036854775807), 0)
	if got != "9223372036854775807" {
		t.Fatalf("unexpected max int64 encoding: %q", got)
	}
	got = mustEncode(t, uint64(18446744073709551615), 0)
	if got != "18446744073709551615" {
		t.Fatalf("unexpected max uint64 encoding: %q", got)
	}
}

func TestStrictIntegerBoundary(t *testing.T) {
	if _, err := Encode(int64(9007199254740991), nil, StrictInteger); err != nil {
		t.Fatalf("expected success at the safe-integer boundary, got %v", err)
	}
	if _, err := Encode(int64(9007199254740992), nil, StrictInteger); err == nil {
		t.Fatal("expected failure one past the safe-integer boundary")
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	input := []byte(`{"a":1,"b":[true,false,null],"c":"x\ty"}`)
	v, err := Decode(input)
	require.NoError(t, err)
	out, err := Encode(v, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, string(input), string(out))
}

func TestDecodeWithoutCache(t *testing.T) {
	v, err := DecodeWithoutCache([]byte(`{"key":1}`))
	require.NoError(t, err)
	require.Len(t, v.Members, 1)
	assert.Equal(t, "key", v.Members[0].Key)
}

func TestEncodeDefault(t *testing.T) {
	out, err := EncodeDefault(map[string]any{"x": 1})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), `"x":1`))
}

func TestFragmentVerbatim(t *testing.T) {
	got := mustEncode(t, Fragment(`{"already":"json"}`), 0)
	if got != `{"already":"json"}` {
		t.Fatalf("unexpected fragment output: %q", got)
	}
}
