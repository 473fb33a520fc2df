package tjnum

// FormatInt renders a signed integer in shortest decimal form: no
// leading zeros, "-" only for negative, no "+".
func FormatInt(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	var tmp [20]byte
	i := len(tmp)
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	for u > 0 {
		i--
		tmp[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		tmp[i] = '-'
	}
	return string(tmp[i:])
}

// FormatUint renders an unsigned integer in shortest decimal form.
func FormatUint(v uint64) string {
	if v == 0 {
		return "0"
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return string(tmp[i:])
}

const (
	// MaxSafeInteger / MinSafeInteger bound the JSON-interoperable
	// integer range under STRICT_INTEGER (spec §4.7): ±(2^53-1).
	MaxSafeInteger = (int64(1) << 53) - 1
	MinSafeInteger = -MaxSafeInteger
)
