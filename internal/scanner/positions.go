package scanner

import "math/bits"

// ColonPositions appends the byte offsets of level-indexed colons within
// [begin, end) to *out. It reports false when the level is beyond the
// indexed range and the caller must rescan the span itself.
func (idx *StructuralIndex) ColonPositions(begin, end, level int, out *[]int) bool {
	if level >= idx.level {
		return false
	}
	generatePositions(idx.colons[level], begin, end, out)
	return true
}

// CommaPositions is ColonPositions for the comma masks.
func (idx *StructuralIndex) CommaPositions(begin, end, level int, out *[]int) bool {
	if level >= idx.level {
		return false
	}
	generatePositions(idx.commas[level], begin, end, out)
	return true
}

func generatePositions(mask []uint64, begin, end int, out *[]int) {
	*out = (*out)[:0]
	if end <= begin {
		return
	}
	last := (end + 63) / 64
	if last > len(mask) {
		last = len(mask)
	}
	for w := begin / 64; w < last; w++ {
		m := mask[w]
		for m != 0 {
			offset := w*64 + bits.TrailingZeros64(m)
			if offset >= end {
				break
			}
			if offset >= begin {
				*out = append(*out, offset)
			}
			m = clearRightmost(m)
		}
	}
}

// FindKeyBackward locates the object key that precedes the colon at end,
// scanning the structural quote mask backward within [begin, end). It
// returns the key content span, excluding the quotes.
func (idx *StructuralIndex) FindKeyBackward(begin, end int) (int, int, *Error) {
	closing := -1

	last := (end + 63) / 64
	if last > len(idx.bitmaps) {
		last = len(idx.bitmaps)
	}
	for w := last - 1; w >= begin/64; w-- {
		m := idx.bitmaps[w].Quote
		for m != 0 {
			offset := (w+1)*64 - bits.LeadingZeros64(m) - 1
			if offset < begin {
				break
			}
			if offset < end {
				if closing >= 0 {
					return offset + 1, closing, nil
				}
				closing = offset
			}
			m = clearLeftmost(m)
		}
	}

	return 0, 0, &Error{Code: CodeUnexpectedToken, Offset: begin}
}

// clearLeftmost removes the leftmost set bit of x.
func clearLeftmost(x uint64) uint64 {
	return x &^ (1 << uint(63-bits.LeadingZeros64(x)))
}

// ScanSpanPositions recomputes colon and comma positions for one container
// interior the structural index did not cover (nesting at or past the
// indexed level). It is the scalar rendition of the index passes applied
// locally: string state, escapes, and a running depth over [begin, end).
func ScanSpanPositions(buf []byte, begin, end int, colons, commas *[]int) *Error {
	*colons = (*colons)[:0]
	*commas = (*commas)[:0]

	inString := false
	escaped := false
	depth := 0
	lastQuote := -1

	for i := begin; i < end; i++ {
		c := buf[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
			lastQuote = i
		case '{', '[':
			if depth == maxContainerDepth {
				return &Error{Code: CodeDepthExceeded, Offset: i}
			}
			depth++
		case '}', ']':
			if depth == 0 {
				return &Error{Code: CodeUnbalancedBrackets, Offset: i}
			}
			depth--
		case ':':
			if depth == 0 {
				*colons = append(*colons, i)
			}
		case ',':
			if depth == 0 {
				*commas = append(*commas, i)
			}
		}
	}

	if inString {
		return &Error{Code: CodeUnterminatedString, Offset: lastQuote}
	}
	if depth != 0 {
		return &Error{Code: CodeUnbalancedBrackets, Offset: end}
	}
	return nil
}
