package tjencode

import "github.com/turbojson/turbojson/internal/tjbuf"

// indent2 re-renders already-compact, well-formed JSON with two-space
// indentation (spec §4.8's INDENT_2): a structural pretty-printer, not a
// re-parse — it only ever has to track string/escape state and bracket
// depth because the input is guaranteed well-formed by the encoder that
// just produced it.
func indent2(src []byte) ([]byte, error) {
	buf := tjbuf.Get()
	defer tjbuf.Put(buf)

	depth := 0
	inString := false
	escaped := false
	var lastWritten byte

	writeNewlineIndent := func(d int) {
		buf.WriteByte('\n')
		for i := 0; i < d; i++ {
			buf.WriteString("  ")
		}
	}
	emit := func(b byte) {
		buf.WriteByte(b)
		lastWritten = b
	}

	for i := 0; i < len(src); i++ {
		b := src[i]

		if inString {
			emit(b)
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
			emit(b)
		case '{', '[':
			emit(b)
			next := byte(0)
			if i+1 < len(src) {
				next = src[i+1]
			}
			if next == matchingClose(b) {
				// empty container: no newline, no trailing comma concerns.
				continue
			}
			depth++
			writeNewlineIndent(depth)
		case '}', ']':
			if lastWritten != '{' && lastWritten != '[' {
				depth--
				writeNewlineIndent(depth)
			}
			emit(b)
		case ',':
			emit(b)
			writeNewlineIndent(depth)
		case ':':
			buf.WriteString(": ")
			lastWritten = ' '
		default:
			emit(b)
		}
	}

	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())
	return out, nil
}

func matchingClose(open byte) byte {
	if open == '{' {
		return '}'
	}
	return ']'
}
