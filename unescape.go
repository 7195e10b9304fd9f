package mison

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"
)

// unescape decodes the string content span [lo, hi), which excludes the
// surrounding quotes. Decoding is eager: a malformed escape fails the whole
// parse here rather than surfacing later from an accessor. An unescaped
// quote inside the span means the span is really several strings jammed
// together (a missing comma, usually) and fails the parse too.
func (w *treeWalker) unescape(lo, hi int) (string, error) {
	return unescapeSpan(w.buf, lo, hi)
}

func unescapeSpan(buf []byte, lo, hi int) (string, error) {
	b := buf[lo:hi]
	if bytes.IndexByte(b, '\\') < 0 {
		if j := bytes.IndexByte(b, '"'); j >= 0 {
			return "", parseErrorAt(ParseErrUnexpectedToken, lo+j)
		}
		return string(b), nil
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		if c == '"' {
			return "", parseErrorAt(ParseErrUnexpectedToken, lo+i)
		}
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(b) {
			return "", parseErrorAt(ParseErrInvalidEscape, lo+i)
		}

		switch b[i+1] {
		case '"', '\\', '/':
			out = append(out, b[i+1])
			i += 2
		case 'b':
			out = append(out, '\b')
			i += 2
		case 'f':
			out = append(out, '\f')
			i += 2
		case 'n':
			out = append(out, '\n')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case 'u':
			r, ok := hexRune(b[i+2:])
			if !ok {
				return "", parseErrorAt(ParseErrInvalidEscape, lo+i)
			}
			i += 6
			if utf16.IsSurrogate(r) {
				if i+6 <= len(b) && b[i] == '\\' && b[i+1] == 'u' {
					if r2, ok := hexRune(b[i+2:]); ok {
						if combined := utf16.DecodeRune(r, r2); combined != utf8.RuneError {
							r = combined
							i += 6
						}
					}
				}
				if utf16.IsSurrogate(r) {
					r = utf8.RuneError
				}
			}
			out = utf8.AppendRune(out, r)
		default:
			return "", parseErrorAt(ParseErrInvalidEscape, lo+i)
		}
	}
	return string(out), nil
}

// hexRune reads four hex digits from the head of b.
func hexRune(b []byte) (rune, bool) {
	if len(b) < 4 {
		return 0, false
	}
	var r rune
	for _, c := range b[:4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, false
		}
	}
	return r, true
}
