// Package tjdecode is the recursive-descent decoder (spec §4.5), built
// directly on jcstoken.parser (lattice-substrate json-canon): the same
// peek/next/expect/skipWhitespace primitives and the same
// pushDepth/popDepth discipline, generalized from JCS's strict input
// domain to plain RFC 8259 JSON. Concretely this decoder:
//
//   - preserves duplicate object keys instead of rejecting them (spec §4.5)
//   - accepts Unicode noncharacters (not a JSON-level constraint)
//   - accepts the "-0" token and any other standard JSON number
//   - splits number lexing into an integer fast path and a float
//     fallback (spec §4.3), via internal/tjnum, instead of always
//     parsing to float64
//   - interns short object keys through internal/tjkeycache (spec §4.4)
package tjdecode

import (
	"fmt"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/turbojson/turbojson/internal/tjkeycache"
	"github.com/turbojson/turbojson/internal/tjnum"
	"github.com/turbojson/turbojson/internal/tjvalue"
	"github.com/turbojson/turbojson/tjerr"
)

// MaxDepth is the nesting depth cap for objects and arrays (spec §3, §4.5).
const MaxDepth = 1024

// Options configures Parse.
type Options struct {
	// KeyCache interns short object keys. Nil disables interning.
	KeyCache *tjkeycache.Cache
}

type parser struct {
	data     []byte
	pos      int
	depth    int
	keyCache *tjkeycache.Cache
}

// Parse decodes a complete JSON document into a Value tree (spec §4.5,
// §6). Empty input, non-whitespace trailing bytes, a document exceeding
// MaxDepth, or any grammar violation raise a *tjerr.DecodeError.
func Parse(data []byte, opts Options) (*tjvalue.Value, error) {
	if len(data) == 0 {
		return nil, tjerr.NewDecodeError(tjerr.EmptyInput, data, 0, "empty input")
	}

	p := &parser{data: data, keyCache: opts.KeyCache}
	p.skipWhitespace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos != len(p.data) {
		return nil, p.errorf(tjerr.TrailingGarbage, "trailing content after JSON value")
	}
	return v, nil
}

func (p *parser) errorf(class tjerr.FailureClass, format string, args ...any) *tjerr.DecodeError {
	return tjerr.NewDecodeError(class, p.data, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	return p.data[p.pos], true
}

func (p *parser) next() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	b := p.data[p.pos]
	p.pos++
	return b, true
}

func (p *parser) expect(b byte) error {
	c, ok := p.next()
	if !ok {
		return p.errorf(tjerr.UnterminatedValue, "unexpected end of input, expected %q", string(b))
	}
	if c != b {
		return p.errorf(tjerr.InvalidGrammar, "expected %q, got %q", string(b), string(c))
	}
	return nil
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) pushDepth() error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorf(tjerr.DepthExceeded, "nesting depth %d exceeds maximum %d", p.depth, MaxDepth)
	}
	return nil
}

func (p *parser) popDepth() { p.depth-- }

func (p *parser) parseValue() (*tjvalue.Value, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errorf(tjerr.UnterminatedValue, "unexpected end of input")
	}

	switch c {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case '"':
		return p.parseString()
	case 't', 'f':
		return p.parseBool()
	case 'n':
		return p.parseNull()
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return p.parseNumber()
	default:
		return nil, p.errorf(tjerr.InvalidGrammar, "unexpected character %q", string(c))
	}
}

func (p *parser) parseObject() (*tjvalue.Value, error) {
	if err := p.pushDepth(); err != nil {
		return nil, err
	}
	defer p.popDepth()

	if err := p.expect('{'); err != nil {
		return nil, err
	}
	p.skipWhitespace()

	v := &tjvalue.Value{Kind: tjvalue.KindObject}

	c, ok := p.peek()
	if !ok {
		return nil, p.errorf(tjerr.UnterminatedValue, "unexpected end of input in object")
	}
	if c == '}' {
		p.pos++
		return v, nil
	}

	for {
		member, done, err := p.parseObjectMember()
		if err != nil {
			return nil, err
		}
		v.Members = append(v.Members, member)
		if done {
			return v, nil
		}
	}
}

func (p *parser) parseObjectMember() (tjvalue.Member, bool, error) {
	p.skipWhitespace()
	c, ok := p.peek()
	if !ok || c != '"' {
		return tjvalue.Member{}, false, p.errorf(tjerr.InvalidGrammar, "expected object key string")
	}

	keyVal, err := p.parseStringKey()
	if err != nil {
		return tjvalue.Member{}, false, err
	}

	p.skipWhitespace()
	if err := p.expect(':'); err != nil {
		return tjvalue.Member{}, false, err
	}
	p.skipWhitespace()

	val, err := p.parseValue()
	if err != nil {
		return tjvalue.Member{}, false, err
	}

	done, err := p.consumeObjectSeparator()
	if err != nil {
		return tjvalue.Member{}, false, err
	}
	return tjvalue.Member{Key: keyVal, Value: *val}, done, nil
}

func (p *parser) consumeObjectSeparator() (bool, error) {
	p.skipWhitespace()
	c, ok := p.peek()
	if !ok {
		return false, p.errorf(tjerr.UnterminatedValue, "unexpected end of input in object")
	}
	if c == '}' {
		p.pos++
		return true, nil
	}
	if c == ',' {
		p.pos++
		p.skipWhitespace()
		return false, nil
	}
	return false, p.errorf(tjerr.InvalidGrammar, "expected ',' or '}' in object, got %q", string(c))
}

func (p *parser) parseArray() (*tjvalue.Value, error) {
	if err := p.pushDepth(); err != nil {
		return nil, err
	}
	defer p.popDepth()

	if err := p.expect('['); err != nil {
		return nil, err
	}
	p.skipWhitespace()

	v := &tjvalue.Value{Kind: tjvalue.KindArray}

	c, ok := p.peek()
	if !ok {
		return nil, p.errorf(tjerr.UnterminatedValue, "unexpected end of input in array")
	}
	if c == ']' {
		p.pos++
		return v, nil
	}

	for {
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v.Elems = append(v.Elems, *elem)

		p.skipWhitespace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errorf(tjerr.UnterminatedValue, "unexpected end of input in array")
		}
		if c == ']' {
			p.pos++
			return v, nil
		}
		if c == ',' {
			p.pos++
			p.skipWhitespace()
			continue
		}
		return nil, p.errorf(tjerr.InvalidGrammar, "expected ',' or ']' in array, got %q", string(c))
	}
}

// parseStringKey parses an object key, routing it through the key cache
// when one is configured (spec §4.4), bypassing it for strings over
// tjkeycache.MaxKeyLen.
func (p *parser) parseStringKey() (string, error) {
	v, err := p.parseString()
	if err != nil {
		return "", err
	}
	if p.keyCache == nil || len(v.Str) > tjkeycache.MaxKeyLen {
		return v.Str, nil
	}
	return p.keyCache.Intern([]byte(v.Str)), nil
}

func (p *parser) parseString() (*tjvalue.Value, error) {
	if err := p.expect('"'); err != nil {
		return nil, err
	}

	var buf []byte
	for {
		done, err := p.consumeStringChunk(&buf)
		if err != nil {
			return nil, err
		}
		if done {
			return &tjvalue.Value{Kind: tjvalue.KindString, Str: string(buf)}, nil
		}
	}
}

func (p *parser) consumeStringChunk(buf *[]byte) (bool, error) {
	if p.pos >= len(p.data) {
		return false, p.errorf(tjerr.UnterminatedValue, "unterminated string")
	}
	b := p.data[p.pos]
	if b == '"' {
		p.pos++
		return true, nil
	}
	if b == '\\' {
		return false, p.consumeEscapedRune(buf)
	}
	if b < 0x20 {
		return false, p.errorf(tjerr.InvalidGrammar, "unescaped control character 0x%02X in string", b)
	}
	return false, p.consumeUTF8Chunk(buf)
}

func (p *parser) consumeEscapedRune(buf *[]byte) error {
	p.pos++
	r, err := p.parseEscape()
	if err != nil {
		return err
	}
	var tmp [4]byte
	n := utf8.EncodeRune(tmp[:], r)
	*buf = append(*buf, tmp[:n]...)
	return nil
}

func (p *parser) parseEscape() (rune, error) {
	if p.pos >= len(p.data) {
		return 0, p.errorf(tjerr.UnterminatedValue, "unterminated escape sequence")
	}
	b := p.data[p.pos]
	p.pos++

	if b == 'u' {
		return p.parseUnicodeEscape()
	}
	r, ok := escapedRune(b)
	if !ok {
		return 0, p.errorf(tjerr.InvalidGrammar, "invalid escape character %q", string(b))
	}
	return r, nil
}

func escapedRune(b byte) (rune, bool) {
	switch b {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case '/':
		return '/', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	r1, err := p.readHex4()
	if err != nil {
		return 0, err
	}

	if !utf16.IsSurrogate(r1) {
		return r1, nil
	}
	if r1 >= 0xDC00 {
		return 0, p.errorf(tjerr.InvalidGrammar, "lone low surrogate U+%04X", r1)
	}

	r2, err := p.readFollowingLowSurrogate(r1)
	if err != nil {
		return 0, err
	}

	decoded := utf16.DecodeRune(r1, r2)
	if decoded == unicode.ReplacementChar {
		return 0, p.errorf(tjerr.InvalidGrammar, "invalid surrogate pair U+%04X U+%04X", r1, r2)
	}
	return decoded, nil
}

func (p *parser) readFollowingLowSurrogate(high rune) (rune, error) {
	if p.pos+1 >= len(p.data) || p.data[p.pos] != '\\' || p.data[p.pos+1] != 'u' {
		return 0, p.errorf(tjerr.InvalidGrammar, "lone high surrogate U+%04X (no following \\u)", high)
	}
	p.pos += 2

	r2, err := p.readHex4()
	if err != nil {
		return 0, err
	}
	if r2 < 0xDC00 || r2 > 0xDFFF {
		return 0, p.errorf(tjerr.InvalidGrammar, "high surrogate U+%04X followed by non-low-surrogate U+%04X", high, r2)
	}
	return r2, nil
}

func (p *parser) readHex4() (rune, error) {
	if p.pos+4 > len(p.data) {
		return 0, p.errorf(tjerr.UnterminatedValue, "incomplete \\u escape")
	}
	var val rune
	for i := 0; i < 4; i++ {
		d, ok := hexDigit(p.data[p.pos+i])
		if !ok {
			return 0, p.errorf(tjerr.InvalidGrammar, "invalid hex in \\u escape")
		}
		val = val<<4 | rune(d)
	}
	p.pos += 4
	return val, nil
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// consumeUTF8Chunk copies one valid UTF-8 sequence, rejecting malformed
// bytes and unpaired surrogates encoded directly as three-byte sequences
// (spec §4.2). Go's encoding/utf8 already treats a raw surrogate-encoding
// sequence as invalid and decodes it to utf8.RuneError, so that case is
// caught by the generic malformed-byte check below; the explicit
// 0xED/0xA0-0xBF pattern check exists only to give it its own message
// (still under the InvalidUTF8 class) instead of the generic "malformed
// byte" one.
func (p *parser) consumeUTF8Chunk(buf *[]byte) error {
	b := p.data[p.pos]
	if b == 0xED && p.pos+1 < len(p.data) && p.data[p.pos+1] >= 0xA0 && p.data[p.pos+1] <= 0xBF {
		return p.errorf(tjerr.InvalidUTF8, "string contains a raw-encoded surrogate code point")
	}
	r, size := utf8.DecodeRune(p.data[p.pos:])
	if r == utf8.RuneError && size <= 1 {
		return p.errorf(tjerr.InvalidUTF8, "invalid UTF-8 byte 0x%02X in string", b)
	}
	*buf = append(*buf, p.data[p.pos:p.pos+size]...)
	p.pos += size
	return nil
}

func (p *parser) parseNumber() (*tjvalue.Value, error) {
	start := p.pos
	n, lex, err := tjnum.ScanNumber(p.data[p.pos:])
	if err != nil {
		return nil, classifyNumberError(p, start, err)
	}
	p.pos += n

	switch {
	case lex.IsInt && lex.IsUnsigned:
		return &tjvalue.Value{Kind: tjvalue.KindUint64, Uint64: lex.Uint64}, nil
	case lex.IsInt:
		return &tjvalue.Value{Kind: tjvalue.KindInt64, Int64: lex.Int64}, nil
	default:
		return &tjvalue.Value{Kind: tjvalue.KindFloat64, Float64: lex.Float64}, nil
	}
}

func classifyNumberError(p *parser, start int, err error) error {
	switch err {
	case tjnum.ErrIntOutOfRange, tjnum.ErrFloatOverflows:
		return tjerr.NewDecodeError(tjerr.NumberOutOfRange, p.data, start, err.Error())
	default:
		return tjerr.NewDecodeError(tjerr.InvalidGrammar, p.data, start, err.Error())
	}
}

func (p *parser) parseBool() (*tjvalue.Value, error) {
	if p.pos+4 <= len(p.data) && string(p.data[p.pos:p.pos+4]) == "true" {
		p.pos += 4
		return &tjvalue.Value{Kind: tjvalue.KindBool, Bool: true}, nil
	}
	if p.pos+5 <= len(p.data) && string(p.data[p.pos:p.pos+5]) == "false" {
		p.pos += 5
		return &tjvalue.Value{Kind: tjvalue.KindBool, Bool: false}, nil
	}
	return nil, p.errorf(tjerr.InvalidGrammar, "invalid literal")
}

func (p *parser) parseNull() (*tjvalue.Value, error) {
	if p.pos+4 <= len(p.data) && string(p.data[p.pos:p.pos+4]) == "null" {
		p.pos += 4
		return &tjvalue.Value{Kind: tjvalue.KindNull}, nil
	}
	return nil, p.errorf(tjerr.InvalidGrammar, "invalid literal")
}
