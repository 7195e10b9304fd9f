package scanner

// Bitmap holds the structural character masks for one 64-byte chunk of
// input. Bit i of each word corresponds to byte chunkBase+i (LSB-first).
type Bitmap struct {
	Backslash    uint64
	Quote        uint64
	Colon        uint64
	Comma        uint64
	LeftBrace    uint64
	RightBrace   uint64
	LeftBracket  uint64
	RightBracket uint64
}

// Backend computes character bitmaps for raw byte chunks. Implementations
// are pure functions of their input: stateless, and safe for concurrent use
// from any number of goroutines. Every implementation must produce
// bit-for-bit identical output for the same input.
type Backend interface {
	// FullBitmap builds the bitmap for the complete 64-byte chunk
	// starting at offset. Requires offset+64 <= len(buf).
	FullBitmap(buf []byte, offset int) Bitmap

	// PartialBitmap builds the bitmap for the tail chunk starting at
	// offset, covering the remaining len(buf)-offset (< 64) bytes.
	// Bits past the end of the buffer are zero.
	PartialBitmap(buf []byte, offset int) Bitmap
}

// Kind selects a Backend implementation.
type Kind int

const (
	// Auto picks the widest backend the host supports.
	Auto Kind = iota
	// Scalar is the portable per-byte classifier.
	Scalar
	// SWAR processes eight bytes per step with bit-parallel arithmetic.
	SWAR
)

// New returns the Backend for the given kind.
func New(kind Kind) Backend {
	switch kind {
	case Scalar:
		return scalarBackend{}
	case SWAR:
		return swarBackend{}
	default:
		if hasFastWideLoads() {
			return swarBackend{}
		}
		return scalarBackend{}
	}
}
