package turbojson

import "github.com/turbojson/turbojson/tjerr"

// DecodeError is raised by Decode on malformed input (spec §6).
type DecodeError = tjerr.DecodeError

// EncodeError is raised by Encode when a value cannot be serialized or the
// option bitmask is invalid (spec §6).
type EncodeError = tjerr.EncodeError

// FailureClass is a stable failure category within one of the two error
// kinds above.
type FailureClass = tjerr.FailureClass
