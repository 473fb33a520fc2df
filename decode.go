package turbojson

import (
	"github.com/turbojson/turbojson/internal/tjdecode"
	"github.com/turbojson/turbojson/internal/tjkeycache"
)

// Decode parses a complete JSON document into a Value tree (spec §4.1,
// §4.5). Object keys no longer than tjkeycache.MaxKeyLen are interned
// through a shared process-wide cache.
//
// Decode accepts exactly one JSON value followed by optional whitespace;
// empty input, trailing non-whitespace bytes, nesting past 1024, and any
// grammar violation return a *DecodeError.
func Decode(input []byte) (*Value, error) {
	return tjdecode.Parse(input, tjdecode.Options{KeyCache: tjkeycache.Shared()})
}

// DecodeWithoutCache behaves like Decode but never interns object keys,
// for callers measuring the cache's own effect on allocation or wanting
// fully independent key strings.
func DecodeWithoutCache(input []byte) (*Value, error) {
	return tjdecode.Parse(input, tjdecode.Options{})
}
