package scanner

import (
	"math/bits"
	"sync"
)

const (
	// MaxIndexLevel caps how many nesting levels get explicit leveled
	// masks. Deeper levels are rescanned on demand.
	MaxIndexLevel = 64

	// maxContainerDepth is the hard ceiling on simultaneously open
	// containers anywhere in a document.
	maxContainerDepth = 1024
)

// IndexBuilder turns raw bytes into a StructuralIndex. A builder holds no
// per-document state and is safe for concurrent use; indexes handed back
// with Release have their scratch storage pooled across Build calls.
type IndexBuilder struct {
	backend Backend
	level   int
	pool    sync.Pool // *StructuralIndex scratch
}

// NewIndexBuilder returns a builder that indexes nesting levels
// 0..level-1 explicitly. level is clamped to [1, MaxIndexLevel].
func NewIndexBuilder(backend Backend, level int) *IndexBuilder {
	if level < 1 {
		level = 1
	}
	if level > MaxIndexLevel {
		level = MaxIndexLevel
	}
	return &IndexBuilder{backend: backend, level: level}
}

// Level reports how many nesting levels the builder indexes.
func (ib *IndexBuilder) Level() int { return ib.level }

// StructuralIndex is the leveled bitmap view of one document. It is
// read-only after Build returns and borrows the input buffer. Give it back
// to its builder with Release once the walk is done.
type StructuralIndex struct {
	buf     []byte
	bitmaps []Bitmap // per-word masks; quote holds structural quotes only
	strMask []uint64 // bytes strictly inside string content
	colons  [][]uint64
	commas  [][]uint64
	level   int
}

// Build runs the four index construction passes: character bitmaps,
// escaped-quote removal, string masking, and the leveled colon/comma
// assignment sweep.
func (ib *IndexBuilder) Build(buf []byte) (*StructuralIndex, *Error) {
	idx, _ := ib.pool.Get().(*StructuralIndex)
	if idx == nil {
		idx = &StructuralIndex{}
	}
	idx.buf = buf
	idx.level = ib.level
	idx.bitmaps = buildCharacterBitmaps(buf, ib.backend, idx.bitmaps)

	removeEscapedQuotes(idx.bitmaps)

	if err := maskStrings(idx); err != nil {
		ib.Release(idx)
		return nil, err
	}

	if err := buildLeveledMasks(idx); err != nil {
		ib.Release(idx)
		return nil, err
	}

	return idx, nil
}

// Release hands idx's scratch storage back for reuse by a later Build. The
// index, and any position or key spans derived from it, must not be used
// after the call. Releasing is optional; an unreleased index is ordinary
// garbage.
func (ib *IndexBuilder) Release(idx *StructuralIndex) {
	if idx == nil {
		return
	}
	idx.buf = nil
	ib.pool.Put(idx)
}

func buildCharacterBitmaps(buf []byte, backend Backend, dst []Bitmap) []Bitmap {
	bitmaps := dst[:0]
	full := len(buf) / 64
	for i := 0; i < full; i++ {
		bitmaps = append(bitmaps, backend.FullBitmap(buf, i*64))
	}
	if len(buf)%64 != 0 {
		bitmaps = append(bitmaps, backend.PartialBitmap(buf, full*64))
	}
	return bitmaps
}

// removeEscapedQuotes clears quote bits that are escaped by an odd run of
// preceding backslashes. The run may cross word boundaries; uu carries the
// escape state of the previous word's top bit.
func removeEscapedQuotes(bitmaps []Bitmap) {
	var uu uint64
	for i := range bitmaps {
		q1 := bitmaps[i].Quote
		var q2 uint64
		if i+1 < len(bitmaps) {
			q2 = bitmaps[i+1].Quote
		}

		// Backslashes whose immediate successor is a quote.
		bsq := (q1>>1 | q2<<63) & bitmaps[i].Backslash

		var u uint64
		for bsq != 0 {
			target := extractRightmost(bsq)
			pos := bits.TrailingZeros64(target) + 1
			if consecutiveOnes(bitmaps[:i+1], pos)%2 == 1 {
				u |= target
			}
			bsq ^= target
		}

		bitmaps[i].Quote &^= uu>>63 | u<<1
		uu = u
	}
}

// consecutiveOnes measures the backslash run ending just below bit pos of
// the last word, extending into earlier words when the run covers a whole
// word.
func consecutiveOnes(bitmaps []Bitmap, pos int) int {
	ones := leadingOnes(bitmaps[len(bitmaps)-1].Backslash, pos)
	if ones < pos {
		return ones
	}
	for i := len(bitmaps) - 2; i >= 0; i-- {
		l := leadingOnes(bitmaps[i].Backslash, 64)
		if l < 64 {
			return ones + l
		}
		ones += 64
	}
	return ones
}

// maskStrings derives the inside-string mask by cumulative quote parity and
// strips colon/comma/brace/bracket candidates that fall inside strings. An
// odd total quote count is an unterminated string.
func maskStrings(idx *StructuralIndex) *Error {
	idx.strMask = resizeWords(idx.strMask, len(idx.bitmaps))

	quotes := 0
	lastQuote := -1
	for w := range idx.bitmaps {
		mQuote := idx.bitmaps[w].Quote
		var mString uint64
		for mQuote != 0 {
			mString ^= smearRightmost(mQuote)
			lastQuote = w*64 + bits.TrailingZeros64(mQuote)
			mQuote = clearRightmost(mQuote)
			quotes++
		}
		if quotes%2 == 1 {
			mString = ^mString
		}

		// The parity mask spans (open, close]; drop the quote bits
		// themselves so only string content remains.
		mString &^= idx.bitmaps[w].Quote
		idx.strMask[w] = mString

		b := &idx.bitmaps[w]
		b.Colon &^= mString
		b.Comma &^= mString
		b.LeftBrace &^= mString
		b.RightBrace &^= mString
		b.LeftBracket &^= mString
		b.RightBracket &^= mString
	}

	if quotes%2 == 1 {
		return &Error{Code: CodeUnterminatedString, Offset: lastQuote}
	}
	return nil
}

// buildLeveledMasks seeds every level with the filtered colon/comma masks,
// then sweeps braces and brackets in byte order with an open-container
// stack, clearing each closed container's interior from all levels
// shallower than the container itself. The sweep is the one inherently
// sequential pass: each step depends on the running stack.
func buildLeveledMasks(idx *StructuralIndex) *Error {
	words := len(idx.bitmaps)
	idx.colons = resizeLevels(idx.colons, idx.level)
	idx.commas = resizeLevels(idx.commas, idx.level)
	for l := 0; l < idx.level; l++ {
		// Seeding assigns every word, so reused storage needs no zeroing.
		idx.colons[l] = resizeWords(idx.colons[l], words)
		idx.commas[l] = resizeWords(idx.commas[l], words)
		for w := range idx.bitmaps {
			idx.colons[l][w] = idx.bitmaps[w].Colon
			idx.commas[l][w] = idx.bitmaps[w].Comma
		}
	}

	type openContainer struct {
		word  int
		bit   uint64
		brace bool
	}
	var stack []openContainer

	for w := range idx.bitmaps {
		b := &idx.bitmaps[w]
		mLeft := b.LeftBrace | b.LeftBracket
		mRight := b.RightBrace | b.RightBracket

		for {
			rightBit := extractRightmost(mRight)

			leftBit := extractRightmost(mLeft)
			for leftBit != 0 && (rightBit == 0 || leftBit < rightBit) {
				if len(stack) == maxContainerDepth {
					return &Error{Code: CodeDepthExceeded, Offset: bitPos(w, leftBit)}
				}
				stack = append(stack, openContainer{w, leftBit, leftBit&b.LeftBrace != 0})
				mLeft = clearRightmost(mLeft)
				leftBit = extractRightmost(mLeft)
			}

			if rightBit != 0 {
				if len(stack) == 0 {
					return &Error{Code: CodeUnbalancedBrackets, Offset: bitPos(w, rightBit)}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.brace != (rightBit&b.RightBrace != 0) {
					return &Error{Code: CodeUnbalancedBrackets, Offset: bitPos(w, rightBit)}
				}

				if depth := len(stack); depth > 0 && depth-1 < idx.level {
					colons := idx.colons[depth-1]
					commas := idx.commas[depth-1]
					if w == top.word {
						mask := ^(rightBit - top.bit)
						colons[w] &= mask
						commas[w] &= mask
					} else {
						mask := top.bit - 1
						colons[top.word] &= mask
						commas[top.word] &= mask
						mask = ^(rightBit - 1)
						colons[w] &= mask
						commas[w] &= mask
						for k := top.word + 1; k < w; k++ {
							colons[k] = 0
							commas[k] = 0
						}
					}
				}
			}

			mRight = clearRightmost(mRight)
			if rightBit == 0 {
				break
			}
		}
	}

	if len(stack) != 0 {
		top := stack[len(stack)-1]
		return &Error{Code: CodeUnbalancedBrackets, Offset: bitPos(top.word, top.bit)}
	}
	return nil
}

func bitPos(word int, bit uint64) int {
	return word*64 + bits.TrailingZeros64(bit)
}

func resizeWords(s []uint64, n int) []uint64 {
	if cap(s) < n {
		return make([]uint64, n)
	}
	return s[:n]
}

func resizeLevels(s [][]uint64, n int) [][]uint64 {
	if cap(s) < n {
		out := make([][]uint64, n)
		copy(out, s)
		return out
	}
	return s[:n]
}
