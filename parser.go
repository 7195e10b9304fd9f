package mison

import (
	"bytes"

	"github.com/structindex/mison-go/internal/scanner"
)

// treeWalker materializes the value tree for one parse call. All state is
// local to the call; nothing survives it except the returned tree.
type treeWalker struct {
	buf []byte
	idx *scanner.StructuralIndex
}

// parseValue parses the trimmed span [begin, end) nested at the given
// level. Containers recurse with level+1; levels at or past the indexed
// range fall back to a local scalar scan of the span.
func (w *treeWalker) parseValue(begin, end, level int) (*Value, error) {
	switch w.buf[begin] {
	case '{':
		if w.buf[end-1] != '}' {
			return nil, parseErrorAt(ParseErrUnexpectedToken, end-1)
		}
		return w.parseObject(begin, end, level)
	case '[':
		if w.buf[end-1] != ']' {
			return nil, parseErrorAt(ParseErrUnexpectedToken, end-1)
		}
		return w.parseArray(begin, end, level)
	case '"':
		return w.parseString(begin, end)
	default:
		return w.parseAtom(begin, end)
	}
}

// positions fetches the level's colon and comma offsets within [begin,
// end) from the index, or rescans the span when the level is beyond the
// indexed range.
func (w *treeWalker) positions(begin, end, level int, colons, commas *[]int) error {
	if w.idx.ColonPositions(begin, end, level, colons) {
		w.idx.CommaPositions(begin, end, level, commas)
		return nil
	}
	if serr := scanner.ScanSpanPositions(w.buf, begin, end, colons, commas); serr != nil {
		return fromScanError(serr)
	}
	return nil
}

func (w *treeWalker) parseObject(begin, end, level int) (*Value, error) {
	v := &Value{kind: KindObject, raw: w.buf[begin:end]}

	lo, hi := trimSpan(w.buf, begin+1, end-1)
	if lo >= hi {
		return v, nil
	}

	var colons, commas []int
	if err := w.positions(lo, hi, level, &colons, &commas); err != nil {
		return nil, err
	}

	v.obj = make([]Member, 0, len(colons))
	entryStart := lo
	for i := 0; i <= len(commas); i++ {
		entryEnd := hi
		if i < len(commas) {
			entryEnd = commas[i]
		}

		colon, ok := firstIn(colons, entryStart, entryEnd)
		if !ok {
			return nil, parseErrorAt(ParseErrUnexpectedToken, entryStart)
		}

		key, err := w.parseKey(entryStart, colon)
		if err != nil {
			return nil, err
		}

		vlo, vhi := trimSpan(w.buf, colon+1, entryEnd)
		if vlo >= vhi {
			return nil, parseErrorAt(ParseErrUnexpectedToken, colon+1)
		}
		elem, err := w.parseValue(vlo, vhi, level+1)
		if err != nil {
			return nil, err
		}

		v.obj = append(v.obj, Member{Key: key, Value: elem})
		if i < len(commas) {
			entryStart = commas[i] + 1
		}
	}

	return v, nil
}

// parseKey extracts and decodes the quoted key of the entry [begin,
// colon). Nothing but whitespace may surround the quotes, and the key must
// be non-empty.
func (w *treeWalker) parseKey(begin, colon int) (string, error) {
	ks, ke, serr := w.idx.FindKeyBackward(begin, colon)
	if serr != nil {
		return "", fromScanError(serr)
	}
	if ks == ke {
		return "", parseErrorAt(ParseErrUnexpectedToken, ks-1)
	}
	if lo, hi := trimSpan(w.buf, begin, colon); lo != ks-1 || hi != ke+1 {
		return "", parseErrorAt(ParseErrUnexpectedToken, lo)
	}
	return w.unescape(ks, ke)
}

func (w *treeWalker) parseArray(begin, end, level int) (*Value, error) {
	v := &Value{kind: KindArray, raw: w.buf[begin:end]}

	lo, hi := trimSpan(w.buf, begin+1, end-1)
	if lo >= hi {
		return v, nil
	}

	var colons, commas []int
	if err := w.positions(lo, hi, level, &colons, &commas); err != nil {
		return nil, err
	}
	if len(colons) > 0 {
		return nil, parseErrorAt(ParseErrUnexpectedToken, colons[0])
	}

	v.arr = make([]*Value, 0, len(commas)+1)
	elemStart := lo
	for i := 0; i <= len(commas); i++ {
		elemEnd := hi
		if i < len(commas) {
			elemEnd = commas[i]
		}

		vlo, vhi := trimSpan(w.buf, elemStart, elemEnd)
		if vlo >= vhi {
			return nil, parseErrorAt(ParseErrUnexpectedToken, elemStart)
		}
		elem, err := w.parseValue(vlo, vhi, level+1)
		if err != nil {
			return nil, err
		}

		v.arr = append(v.arr, elem)
		if i < len(commas) {
			elemStart = commas[i] + 1
		}
	}

	return v, nil
}

func (w *treeWalker) parseString(begin, end int) (*Value, error) {
	if end-begin < 2 || w.buf[end-1] != '"' {
		return nil, parseErrorAt(ParseErrUnexpectedToken, end-1)
	}
	str, err := w.unescape(begin+1, end-1)
	if err != nil {
		return nil, err
	}
	return &Value{kind: KindString, raw: w.buf[begin:end], str: str}, nil
}

func (w *treeWalker) parseAtom(begin, end int) (*Value, error) {
	raw := w.buf[begin:end]
	switch {
	case bytes.Equal(raw, []byte("null")):
		return &Value{kind: KindNull, raw: raw, str: "null"}, nil
	case bytes.Equal(raw, []byte("true")):
		return &Value{kind: KindBool, raw: raw, boolean: true, str: "true"}, nil
	case bytes.Equal(raw, []byte("false")):
		return &Value{kind: KindBool, raw: raw, str: "false"}, nil
	}

	isInt, ok := validateNumber(raw)
	if !ok {
		return nil, parseErrorAt(ParseErrUnexpectedToken, begin)
	}
	return &Value{kind: KindNumber, raw: raw, str: string(raw), isInt: isInt}, nil
}

// validateNumber checks JSON number syntax over the whole span and reports
// whether the number is integral (no fraction or exponent part).
func validateNumber(b []byte) (isInt, ok bool) {
	i := 0
	if i < len(b) && b[i] == '-' {
		i++
	}
	switch {
	case i < len(b) && b[i] == '0':
		i++
	case i < len(b) && b[i] >= '1' && b[i] <= '9':
		for i < len(b) && isDigit(b[i]) {
			i++
		}
	default:
		return false, false
	}

	isInt = true
	if i < len(b) && b[i] == '.' {
		isInt = false
		i++
		if i >= len(b) || !isDigit(b[i]) {
			return false, false
		}
		for i < len(b) && isDigit(b[i]) {
			i++
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		isInt = false
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		if i >= len(b) || !isDigit(b[i]) {
			return false, false
		}
		for i < len(b) && isDigit(b[i]) {
			i++
		}
	}

	return isInt, i == len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// firstIn returns the first position in sorted ps that falls in [lo, hi).
func firstIn(ps []int, lo, hi int) (int, bool) {
	for _, p := range ps {
		if p >= hi {
			break
		}
		if p >= lo {
			return p, true
		}
	}
	return 0, false
}
