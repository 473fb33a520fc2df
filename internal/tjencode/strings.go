package tjencode

import (
	"github.com/turbojson/turbojson/internal/tjbuf"
	"github.com/turbojson/turbojson/tjerr"
)

// encodeString writes s as a JSON string literal (spec §4.2): verbatim
// copy except the two-character escapes, the short control escapes, and
// \u00XX for the remaining C0 controls. Adapted from jcs.serializeString
// (lattice-substrate json-canon), which does the same byte-wise scan with
// a fast multi-byte UTF-8 span copy; unlike JCS, the solidus '/' is never
// escaped here either. Fails with an EncodeError if s carries a raw
// unpaired surrogate (spec §4.2) — the one validity check the encoder
// still owes a caller-supplied string, since the decoder is not in the
// loop to have already checked it.
func encodeString(buf *tjbuf.Buffer, s string) error {
	if containsUnpairedSurrogate(s) {
		return tjerr.NewEncodeError(tjerr.UnpairedSurrogate, "string contains an unpaired surrogate code point")
	}
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		next, consumed := appendEscapedByte(buf, s[i])
		if consumed {
			_ = next
			i++
			continue
		}
		size := utf8SpanLen(s, i)
		buf.WriteString(s[i : i+size])
		i += size
	}
	buf.WriteByte('"')
	return nil
}

// appendEscapedByte writes the escaped form of b if it needs one. The
// bool return mirrors the teacher's two-value convention distinguishing
// "consumed as an escape" from "fall through to raw copy".
func appendEscapedByte(buf *tjbuf.Buffer, b byte) (struct{}, bool) {
	switch b {
	case '"':
		buf.WriteString(`\"`)
	case '\\':
		buf.WriteString(`\\`)
	case '\b':
		buf.WriteString(`\b`)
	case '\t':
		buf.WriteString(`\t`)
	case '\n':
		buf.WriteString(`\n`)
	case '\f':
		buf.WriteString(`\f`)
	case '\r':
		buf.WriteString(`\r`)
	default:
		if b < 0x20 {
			const hex = "0123456789abcdef"
			buf.WriteString(`\u00`)
			buf.WriteByte(hex[b>>4])
			buf.WriteByte(hex[b&0x0F])
			return struct{}{}, true
		}
		return struct{}{}, false
	}
	return struct{}{}, true
}

func utf8SpanLen(s string, i int) int {
	b := s[i]
	if b < 0x80 {
		return 1
	}
	size := utf8SeqLen(b)
	if i+size > len(s) {
		return len(s) - i
	}
	return size
}

func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}

// containsUnpairedSurrogate reports whether s contains a raw three-byte
// UTF-8 sequence encoding a surrogate code point U+D800-U+DFFF
// (spec §4.2: always an encode error). Go's encoding/utf8 already treats
// such a sequence as invalid and decodes it as utf8.RuneError, so the
// surrogate byte pattern (0xED followed by a second byte in
// 0xA0-0xBF) is matched directly rather than through rune decoding.
func containsUnpairedSurrogate(s string) bool {
	for i := 0; i+3 <= len(s); i++ {
		if s[i] == 0xED && s[i+1] >= 0xA0 && s[i+1] <= 0xBF {
			return true
		}
	}
	return false
}
