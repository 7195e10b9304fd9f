// Package mison is a JSON engine built on the Mison algorithm: a parse
// first computes leveled bitmaps of the structural characters in the input
// (the structural index), then walks those bitmaps to materialize a value
// tree or to extract just the fields named by query paths, skipping
// everything else.
//
// All results borrow from the input buffer. The buffer must stay alive and
// unmodified for as long as any Value raw span or query result span is in
// use. Parsers hold no per-call state and may be shared by goroutines
// parsing different buffers.
package mison

import (
	"github.com/structindex/mison-go/internal/scanner"
)

// Backend selects the bitmap backend implementation. Backends differ only
// in speed; their output is bit-for-bit identical.
type Backend int

const (
	// BackendAuto picks the widest implementation the host supports.
	BackendAuto Backend = iota
	// BackendScalar classifies one byte at a time.
	BackendScalar
	// BackendSWAR classifies eight bytes per step with bit-parallel
	// word arithmetic.
	BackendSWAR
)

func (b Backend) kind() scanner.Kind {
	switch b {
	case BackendScalar:
		return scanner.Scalar
	case BackendSWAR:
		return scanner.SWAR
	default:
		return scanner.Auto
	}
}

// MaxIndexLevel is the deepest nesting level the structural index can
// cover explicitly. Deeper nesting still parses, through a scalar rescan
// of the affected spans.
const MaxIndexLevel = scanner.MaxIndexLevel

// Parser materializes whole documents.
type Parser struct {
	builder *scanner.IndexBuilder
}

// NewParser returns a Parser whose structural index covers nesting levels
// 0..level-1. level is clamped to [1, MaxIndexLevel]; nesting beyond it
// falls back to scalar span scans during the walk.
func NewParser(backend Backend, level int) *Parser {
	return &Parser{builder: scanner.NewIndexBuilder(scanner.New(backend.kind()), level)}
}

// Parse builds the structural index for input and walks it into a full
// value tree. On any structural or lexical error it returns a *ParseError
// and no partial tree.
func (p *Parser) Parse(input []byte) (*Value, error) {
	begin, end := trimSpan(input, 0, len(input))
	if begin >= end {
		return nil, parseErrorAt(ParseErrUnexpectedToken, begin)
	}

	idx, serr := p.builder.Build(input)
	if serr != nil {
		return nil, fromScanError(serr)
	}
	defer p.builder.Release(idx)

	w := &treeWalker{buf: input, idx: idx}
	return w.parseValue(begin, end, 0)
}

// QueryParser extracts only the values named by a QueryTree.
type QueryParser struct {
	builder *scanner.IndexBuilder
	tree    *QueryTree
}

// NewQueryParser returns a QueryParser over the given tree. The structural
// index is built with at least tree.MaxLevel() levels; a larger level only
// widens the explicitly indexed range. The tree must not be mutated after
// this call.
func NewQueryParser(backend Backend, level int, tree *QueryTree) *QueryParser {
	if level < tree.MaxLevel() {
		level = tree.MaxLevel()
	}
	return &QueryParser{
		builder: scanner.NewIndexBuilder(scanner.New(backend.kind()), level),
		tree:    tree,
	}
}

// trimSpan narrows [begin, end) past leading and trailing JSON whitespace.
func trimSpan(buf []byte, begin, end int) (int, int) {
	for begin < end && isSpace(buf[begin]) {
		begin++
	}
	for end > begin && isSpace(buf[end-1]) {
		end--
	}
	return begin, end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
