// Package tjoptions holds the Encode option bitmask (spec §4.8) as its
// own package so both the encoder and the public root package can share
// one definition without the encoder depending on the root package.
package tjoptions

import "github.com/turbojson/turbojson/tjerr"

// Option is a bitmask of the flags recognized by Encode.
type Option uint32

const (
	AppendNewline Option = 1 << iota
	Indent2
	NaiveUTC
	UTCZ
	OmitMicroseconds
	StrictInteger
	NonStrKeys
	SortKeys
	PassthroughSubclass
	PassthroughDatetime
	SerializeNumericArrays

	allOptions = AppendNewline | Indent2 | NaiveUTC | UTCZ | OmitMicroseconds |
		StrictInteger | NonStrKeys | SortKeys | PassthroughSubclass |
		PassthroughDatetime | SerializeNumericArrays
)

// Validate rejects any bit outside the recognized set (spec §4.8: "any
// other value ... raises an encode error before encoding begins").
func (o Option) Validate() error {
	if o&^allOptions != 0 {
		return tjerr.NewEncodeError(tjerr.InvalidOption, "unrecognized option bits set")
	}
	return nil
}

// Has reports whether bit is set in o.
func (o Option) Has(bit Option) bool { return o&bit != 0 }
