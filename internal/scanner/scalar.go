package scanner

// scalarBackend classifies one byte at a time. It is the portable reference
// implementation the other backends are tested against.
type scalarBackend struct{}

func (scalarBackend) FullBitmap(buf []byte, offset int) Bitmap {
	return scalarBitmap(buf[offset : offset+64])
}

func (scalarBackend) PartialBitmap(buf []byte, offset int) Bitmap {
	return scalarBitmap(buf[offset:])
}

func scalarBitmap(chunk []byte) Bitmap {
	var bm Bitmap
	for i, c := range chunk {
		bit := uint64(1) << uint(i)
		switch c {
		case '\\':
			bm.Backslash |= bit
		case '"':
			bm.Quote |= bit
		case ':':
			bm.Colon |= bit
		case ',':
			bm.Comma |= bit
		case '{':
			bm.LeftBrace |= bit
		case '}':
			bm.RightBrace |= bit
		case '[':
			bm.LeftBracket |= bit
		case ']':
			bm.RightBracket |= bit
		}
	}
	return bm
}
