package scanner

import "encoding/binary"

// swarBackend classifies eight bytes per step. Each 8-byte lane is XORed
// against a splatted target byte, zero bytes are detected with the usual
// subtract/AND-NOT trick, and the per-byte flags collapse into eight mask
// bits with a single multiply.
type swarBackend struct{}

const (
	swarLo      = ^uint64(0) / 0xFF       // 0x0101...01
	swarHi      = swarLo << 7             // 0x8080...80
	swarCollect = 0x0102040810204080      // moves byte flags to the top byte, LSB-first
)

func (swarBackend) FullBitmap(buf []byte, offset int) Bitmap {
	var bm Bitmap
	for lane := 0; lane < 8; lane++ {
		w := binary.LittleEndian.Uint64(buf[offset+lane*8:])
		shift := uint(lane * 8)
		bm.Backslash |= matchMask(w, '\\') << shift
		bm.Quote |= matchMask(w, '"') << shift
		bm.Colon |= matchMask(w, ':') << shift
		bm.Comma |= matchMask(w, ',') << shift
		bm.LeftBrace |= matchMask(w, '{') << shift
		bm.RightBrace |= matchMask(w, '}') << shift
		bm.LeftBracket |= matchMask(w, '[') << shift
		bm.RightBracket |= matchMask(w, ']') << shift
	}
	return bm
}

func (swarBackend) PartialBitmap(buf []byte, offset int) Bitmap {
	// Stage the tail into a zero-padded chunk; zero bytes match none of
	// the structural characters, so the padding contributes no bits.
	var chunk [64]byte
	copy(chunk[:], buf[offset:])
	return swarBackend{}.FullBitmap(chunk[:], 0)
}

// matchMask returns an 8-bit mask with bit j set where byte j of w equals c.
func matchMask(w uint64, c byte) uint64 {
	x := w ^ (swarLo * uint64(c))
	zeros := (x - swarLo) & ^x & swarHi
	// zeros has 0x80 in each matching byte; collapse to one bit per byte.
	return ((zeros >> 7) * swarCollect) >> 56
}
