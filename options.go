package turbojson

import "github.com/turbojson/turbojson/internal/tjoptions"

// Option is a bitmask of the flags recognized by Encode (spec §4.8).
type Option = tjoptions.Option

// The recognized Option bits. An Option value carrying any other bit
// fails Encode with an InvalidOption error.
const (
	AppendNewline          = tjoptions.AppendNewline
	Indent2                = tjoptions.Indent2
	NaiveUTC               = tjoptions.NaiveUTC
	UTCZ                   = tjoptions.UTCZ
	OmitMicroseconds       = tjoptions.OmitMicroseconds
	StrictInteger          = tjoptions.StrictInteger
	NonStrKeys             = tjoptions.NonStrKeys
	SortKeys               = tjoptions.SortKeys
	PassthroughSubclass    = tjoptions.PassthroughSubclass
	PassthroughDatetime    = tjoptions.PassthroughDatetime
	SerializeNumericArrays = tjoptions.SerializeNumericArrays
)
