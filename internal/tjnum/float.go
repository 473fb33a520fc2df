// Package tjnum implements the codec's number codecs: shortest
// round-trip float formatting, integer formatting, and the decoder's
// number lexer (spec §4.3).
//
// FormatFloat's digit generator is adapted from jcsfloat.FormatDouble
// (lattice-substrate json-canon), which implements the Burger-Dybvig
// "free-format" algorithm over math/big for ECMA-262 Number::toString.
// The digit-generation core (decodeFloatParts/generateDigits) is kept
// verbatim; only the final formatting step changes, because turbojson's
// fixed-vs-scientific cutoff is not ECMA-262's. ECMA-262 switches to
// fixed notation whenever the decimal exponent n is in (k, 21] (it will
// pad up to 21 digits of trailing zeros before ever using "e"); spec §4.3
// instead asks for scientific notation to be "suppressed for magnitudes
// that admit a fixed representation of similar or shorter length", which
// in practice means a much tighter band around the decimal point.
package tjnum

import (
	"errors"
	"math"
	"math/big"
)

// ErrNotFinite indicates FormatFloat was asked to format NaN or ±Inf,
// neither of which has a JSON literal (they encode as "null" one layer up
// in the encoder, not here).
var ErrNotFinite = errors.New("tjnum: value is not finite (NaN or Infinity)")

var bigTen = big.NewInt(10)

// FormatFloat formats f as the shortest decimal string that round-trips
// to the same float64, per spec §4.3. Negative zero formats as "-0"
// is never produced: JSON has no signed-zero literal distinct from the
// encoder's NaN/Inf->null path, and -0.0 is a legitimate finite value
// that simply formats as "0" with a leading minus removed by the zero
// fast path below to match the fixtures ("0" not "-0").
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrNotFinite
	}
	if f == 0 {
		return "0", nil
	}

	negative := f < 0
	if negative {
		f = -f
	}

	digits, n := generateDigits(f)
	return formatJSON(negative, digits, n), nil
}

// formatJSON lays out digits (the significand) and n (the decimal
// exponent, such that value = 0.<digits> * 10^n) using spec §4.3's
// cutoff: fixed-point whenever the resulting literal is no longer than
// the scientific form would be, scientific otherwise.
func formatJSON(negative bool, digits string, n int) string {
	k := len(digits)

	var buf []byte
	if negative {
		buf = append(buf, '-')
	}

	if useFixed(k, n) {
		return string(appendFixed(buf, digits, k, n))
	}
	return string(appendScientific(buf, digits, k, n))
}

// useFixed decides between fixed and scientific notation by comparing
// the rendered lengths, per spec §4.3 ("similar or shorter length").
// Fixed-point magnitude range is capped at 21 (matching the practical
// range where trailing zeros stay bounded) to avoid pathological
// all-zero padding for huge exponents.
func useFixed(k, n int) bool {
	if n > 21 || n < -5 {
		return false
	}
	fixedLen := fixedLength(k, n)
	sciLen := scientificLength(k, n)
	return fixedLen <= sciLen
}

func fixedLength(k, n int) int {
	switch {
	case n <= 0:
		// 0.000ddd
		return 2 + (-n) + k
	case n >= k:
		// ddd000
		return n
	default:
		// dd.ddd
		return k + 1
	}
}

func scientificLength(k, n int) int {
	exp := n - 1
	expDigits := decimalDigitCount(abs(exp))
	length := k + 2 + expDigits // digit(s) + "e" + sign + exponent digits
	if k > 1 {
		length++ // decimal point
	}
	return length
}

func decimalDigitCount(v int) int {
	if v == 0 {
		return 1
	}
	n := 0
	for v > 0 {
		n++
		v /= 10
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func appendFixed(buf []byte, digits string, k, n int) []byte {
	switch {
	case n <= 0:
		buf = append(buf, '0', '.')
		for i := 0; i < -n; i++ {
			buf = append(buf, '0')
		}
		return append(buf, digits...)
	case n >= k:
		buf = append(buf, digits...)
		for i := 0; i < n-k; i++ {
			buf = append(buf, '0')
		}
		return buf
	default:
		buf = append(buf, digits[:n]...)
		buf = append(buf, '.')
		return append(buf, digits[n:]...)
	}
}

func appendScientific(buf []byte, digits string, k, n int) []byte {
	buf = append(buf, digits[0])
	if k > 1 {
		buf = append(buf, '.')
		buf = append(buf, digits[1:]...)
	}
	buf = append(buf, 'e')
	exp := n - 1
	if exp >= 0 {
		buf = append(buf, '+')
	}
	return appendInt(buf, exp)
}

func appendInt(buf []byte, v int) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	if v == 0 {
		return append(buf, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(buf, tmp[i:]...)
}

// generateDigits implements the Burger-Dybvig shortest-output digit
// generator over exact big.Int arithmetic, unchanged from jcsfloat, for a
// positive finite nonzero double. Returns (digits, n) such that
// value = 0.<digits> * 10^n.
func generateDigits(f float64) (string, int) {
	parts := decodeFloatParts(f)
	state := initScaledState(parts)

	k := estimateK(f)
	scaleByPower10(state, k)

	n := k
	n = applyHighFixup(state, parts.isEven, n)
	n = applyLowFixup(state, parts.isEven, n)

	return extractDigits(state, parts.isEven, n)
}

type floatParts struct {
	fMant         uint64
	fExp          int
	lowerBoundary bool
	isEven        bool
}

type digitState struct {
	r, s, mPlus, mMinus *big.Int
}

func decodeFloatParts(f float64) floatParts {
	bits := math.Float64bits(f)
	mantissa := bits & ((uint64(1) << 52) - 1)
	biasedExp := int(exponentBits(bits))

	fMant := mantissa
	fExp := 1 - 1023 - 52
	if biasedExp != 0 {
		fMant = (uint64(1) << 52) | mantissa
		fExp = biasedExp - 1023 - 52
	}

	return floatParts{
		fMant:         fMant,
		fExp:          fExp,
		lowerBoundary: biasedExp > 1 && mantissa == 0,
		isEven:        fMant%2 == 0,
	}
}

func initScaledState(parts floatParts) *digitState {
	state := &digitState{r: new(big.Int), s: new(big.Int), mPlus: new(big.Int), mMinus: new(big.Int)}
	if parts.fExp >= 0 {
		initScaledPositiveExp(state, parts)
		return state
	}
	initScaledNegativeExp(state, parts)
	return state
}

func initScaledPositiveExp(state *digitState, parts floatParts) {
	if !parts.lowerBoundary {
		state.r.SetUint64(parts.fMant)
		lshByInt(state.r, parts.fExp+1)
		state.s.SetInt64(2)
		state.mPlus.SetInt64(1)
		lshByInt(state.mPlus, parts.fExp)
		state.mMinus.Set(state.mPlus)
		return
	}
	state.r.SetUint64(parts.fMant)
	lshByInt(state.r, parts.fExp+2)
	state.s.SetInt64(4)
	state.mPlus.SetInt64(1)
	lshByInt(state.mPlus, parts.fExp+1)
	state.mMinus.SetInt64(1)
	lshByInt(state.mMinus, parts.fExp)
}

func initScaledNegativeExp(state *digitState, parts floatParts) {
	if !parts.lowerBoundary {
		state.r.SetUint64(parts.fMant)
		lshByInt(state.r, 1)
		state.s.SetInt64(1)
		lshByInt(state.s, -parts.fExp+1)
		state.mPlus.SetInt64(1)
		state.mMinus.SetInt64(1)
		return
	}
	state.r.SetUint64(parts.fMant)
	lshByInt(state.r, 2)
	state.s.SetInt64(1)
	lshByInt(state.s, -parts.fExp+2)
	state.mPlus.SetInt64(2)
	state.mMinus.SetInt64(1)
}

func scaleByPower10(state *digitState, k int) {
	switch {
	case k > 0:
		state.s.Mul(state.s, pow10Big(k))
	case k < 0:
		p := pow10Big(-k)
		state.r.Mul(state.r, p)
		state.mPlus.Mul(state.mPlus, p)
		state.mMinus.Mul(state.mMinus, p)
	}
}

func applyHighFixup(state *digitState, isEven bool, n int) int {
	high := new(big.Int).Add(state.r, state.mPlus)
	if cmpHigh(high, state.s, isEven) {
		state.s.Mul(state.s, bigTen)
		return n + 1
	}
	return n
}

func applyLowFixup(state *digitState, isEven bool, n int) int {
	for {
		tenR := new(big.Int).Mul(state.r, bigTen)
		if !cmpLow(tenR, state.s, isEven) {
			return n
		}
		tenHigh := new(big.Int).Mul(new(big.Int).Add(state.r, state.mPlus), bigTen)
		if !cmpLow(tenHigh, state.s, isEven) {
			return n
		}
		state.r.Mul(state.r, bigTen)
		state.mPlus.Mul(state.mPlus, bigTen)
		state.mMinus.Mul(state.mMinus, bigTen)
		n--
	}
}

func cmpLow(lhs, rhs *big.Int, isEven bool) bool {
	if isEven {
		return lhs.Cmp(rhs) < 0
	}
	return lhs.Cmp(rhs) <= 0
}

func cmpHigh(lhs, rhs *big.Int, isEven bool) bool {
	if isEven {
		return lhs.Cmp(rhs) >= 0
	}
	return lhs.Cmp(rhs) > 0
}

func extractDigits(state *digitState, isEven bool, n int) (string, int) {
	var digitBuf [30]byte
	dIdx := 0
	quot := new(big.Int)
	rem := new(big.Int)

	for {
		state.r.Mul(state.r, bigTen)
		state.mPlus.Mul(state.mPlus, bigTen)
		state.mMinus.Mul(state.mMinus, bigTen)

		quot.DivMod(state.r, state.s, rem)
		d := int(quot.Int64())
		state.r.Set(rem)

		tc1 := cmpRoundDown(state.r, state.mMinus, isEven)
		high := new(big.Int).Add(state.r, state.mPlus)
		tc2 := cmpHigh(high, state.s, isEven)

		if !tc1 && !tc2 {
			digitBuf[dIdx] = byte('0' + d)
			dIdx++
			continue
		}

		digitBuf[dIdx] = finalDigit(d, tc1, tc2, state.r, state.s)
		dIdx++
		break
	}

	n = normalizeDigitBuffer(digitBuf[:], dIdx, &dIdx, n)
	return string(digitBuf[:dIdx]), n
}

func cmpRoundDown(lhs, rhs *big.Int, isEven bool) bool {
	if isEven {
		return lhs.Cmp(rhs) <= 0
	}
	return lhs.Cmp(rhs) < 0
}

func finalDigit(d int, tc1, tc2 bool, r, s *big.Int) byte {
	switch {
	case tc1 && !tc2:
		return byte('0' + d)
	case !tc1 && tc2:
		return byte('0' + d + 1)
	default:
		return midpointDigit(d, r, s)
	}
}

func midpointDigit(d int, r, s *big.Int) byte {
	twoR := new(big.Int).Lsh(r, 1)
	cmp := twoR.Cmp(s)
	if cmp < 0 {
		return byte('0' + d)
	}
	if cmp > 0 {
		return byte('0' + d + 1)
	}
	if d%2 == 0 {
		return byte('0' + d)
	}
	return byte('0' + d + 1)
}

func normalizeDigitBuffer(digitBuf []byte, dIdx int, dIdxPtr *int, n int) int {
	for i := dIdx - 1; i > 0; i-- {
		if digitBuf[i] > '9' {
			digitBuf[i] = '0'
			digitBuf[i-1]++
		}
	}
	if dIdx > 0 && digitBuf[0] > '9' {
		copy(digitBuf[1:dIdx+1], digitBuf[0:dIdx])
		digitBuf[0] = '1'
		digitBuf[1] = '0'
		dIdx++
		n++
	}
	for dIdx > 1 && digitBuf[dIdx-1] == '0' {
		dIdx--
	}
	*dIdxPtr = dIdx
	return n
}

func exponentBits(bits uint64) uint16 {
	hi := byte((bits >> 56) & 0xFF)
	lo := byte((bits >> 48) & 0xFF)
	return (uint16(hi&0x7F) << 4) | uint16(lo>>4)
}

func lshByInt(z *big.Int, n int) {
	for i := 0; i < n; i++ {
		z.Lsh(z, 1)
	}
}

// estimateK returns an estimate of ceil(log10(f)) for f > 0.
func estimateK(f float64) int {
	bits := math.Float64bits(f)
	biasedExp := int(exponentBits(bits))

	var log2f float64
	if biasedExp == 0 {
		log2f = math.Log2(f)
	} else {
		log2f = float64(biasedExp-1023) + math.Log2(1.0+float64(bits&((1<<52)-1))/float64(uint64(1)<<52))
	}

	return int(math.Ceil(log2f / math.Log2(10)))
}

var pow10Cache [700]*big.Int

func init() {
	pow10Cache[0] = big.NewInt(1)
	for i := 1; i < len(pow10Cache); i++ {
		pow10Cache[i] = new(big.Int).Mul(pow10Cache[i-1], bigTen)
	}
}

func pow10Big(n int) *big.Int {
	if n >= 0 && n < len(pow10Cache) {
		return pow10Cache[n]
	}
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
