package mison

import "strings"

// queryNode is one trie node of compiled query paths. The level is the
// nesting depth the node's key must be matched at, with the root at 0, so
// colon masks at level-1 locate a node's candidate keys.
type queryNode struct {
	level    int
	pathID   int // result slot for a terminal node, -1 otherwise
	children map[string]*queryNode
}

func (n *queryNode) isLeaf() bool { return len(n.children) == 0 }

func (n *queryNode) child(field string) *queryNode {
	return n.children[field]
}

// QueryTree compiles dotted query paths into a prefix trie. Build it up
// with AddPath before parsing; once handed to a QueryParser it must not be
// mutated. A finished tree is read-only and may be shared by concurrent
// parses of different buffers.
type QueryTree struct {
	root     queryNode
	paths    []string
	maxLevel int
}

// NewQueryTree returns an empty tree.
func NewQueryTree() *QueryTree {
	return &QueryTree{root: queryNode{pathID: -1}}
}

// AddPath parses a "$.field.subfield" path and merges it into the trie.
// The result slot of the path is its insertion position: the n-th added
// path fills entry n of QueryParser.Parse results. Paths with array-index
// segments are rejected with PathErrUnsupported; all other syntax
// violations are PathErrMalformed.
func (t *QueryTree) AddPath(path string) error {
	if !strings.HasPrefix(path, "$.") {
		return &PathError{Kind: PathErrMalformed, Path: path}
	}

	cur := &t.root
	for _, field := range strings.Split(path[2:], ".") {
		if field == "" {
			return &PathError{Kind: PathErrMalformed, Path: path}
		}
		if strings.ContainsAny(field, "[]") {
			return &PathError{Kind: PathErrUnsupported, Path: path}
		}

		next := cur.child(field)
		if next == nil {
			next = &queryNode{level: cur.level + 1, pathID: -1}
			if cur.children == nil {
				cur.children = make(map[string]*queryNode)
			}
			cur.children[field] = next
		}
		cur = next
	}

	cur.pathID = len(t.paths)
	if cur.level > t.maxLevel {
		t.maxLevel = cur.level
	}
	t.paths = append(t.paths, path)
	return nil
}

// MaxLevel reports the deepest segment level across all added paths; the
// root is level 0. It is the index depth a QueryParser needs.
func (t *QueryTree) MaxLevel() int { return t.maxLevel }

// NumPaths reports how many paths have been added.
func (t *QueryTree) NumPaths() int { return len(t.paths) }

// Paths returns the added paths in insertion order.
func (t *QueryTree) Paths() []string { return t.paths }
