package turbojson

import "github.com/turbojson/turbojson/internal/tjencode"

// Fallback is invoked once per value Encode has no native serializer for;
// its return value is re-dispatched through Encode's type switch (spec
// §4.6, §9). A nil Fallback means any unsupported type is an EncodeError.
type Fallback = tjencode.Fallback
