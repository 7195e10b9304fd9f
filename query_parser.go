package mison

import (
	"github.com/structindex/mison-go/internal/scanner"
)

// Parse resolves every leaf path of the query tree against input. The
// result has one entry per added path, in insertion order: the trimmed raw
// span of the matched value, or nil when any key along the path is absent.
// Values not on a requested path are never descended into; an unmatched
// key's whole subtree is skipped with one comma-mask jump.
func (qp *QueryParser) Parse(input []byte) ([][]byte, error) {
	begin, end := trimSpan(input, 0, len(input))
	if begin >= end || input[begin] != '{' {
		return nil, parseErrorAt(ParseErrUnexpectedToken, begin)
	}

	idx, serr := qp.builder.Build(input)
	if serr != nil {
		return nil, fromScanError(serr)
	}
	defer qp.builder.Release(idx)

	results := make([][]byte, qp.tree.NumPaths())
	if err := qp.walk(idx, input, begin, end, &qp.tree.root, results); err != nil {
		return nil, err
	}
	return results, nil
}

func (qp *QueryParser) walk(idx *scanner.StructuralIndex, buf []byte, begin, end int, node *queryNode, results [][]byte) error {
	lo, hi := trimSpan(buf, begin+1, end-1)
	if lo >= hi {
		return nil
	}

	var colons, commas []int
	if idx.ColonPositions(lo, hi, node.level, &colons) {
		idx.CommaPositions(lo, hi, node.level, &commas)
	} else if serr := scanner.ScanSpanPositions(buf, lo, hi, &colons, &commas); serr != nil {
		return fromScanError(serr)
	}

	found := 0
	entryStart := lo
	for i := 0; i <= len(commas) && found < len(node.children); i++ {
		entryEnd := hi
		if i < len(commas) {
			entryEnd = commas[i]
		}

		colon, ok := firstIn(colons, entryStart, entryEnd)
		if !ok {
			return parseErrorAt(ParseErrUnexpectedToken, entryStart)
		}

		ks, ke, serr := idx.FindKeyBackward(entryStart, colon)
		if serr != nil {
			return fromScanError(serr)
		}

		// Keys are matched on their raw bytes; an escaped key must be
		// queried in the same spelling the document uses.
		if child := node.child(string(buf[ks:ke])); child != nil {
			found++

			vlo, vhi := trimSpan(buf, colon+1, entryEnd)
			if vlo >= vhi {
				return parseErrorAt(ParseErrUnexpectedToken, colon+1)
			}

			if child.pathID >= 0 {
				results[child.pathID] = buf[vlo:vhi]
			}
			if !child.isLeaf() && buf[vlo] == '{' {
				if err := qp.walk(idx, buf, vlo, vhi, child, results); err != nil {
					return err
				}
			}
		}

		if i < len(commas) {
			entryStart = commas[i] + 1
		}
	}

	return nil
}
