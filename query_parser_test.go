package mison

import (
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func queryTree(t *testing.T, paths ...string) *QueryTree {
	t.Helper()
	tree := NewQueryTree()
	for _, p := range paths {
		if err := tree.AddPath(p); err != nil {
			t.Fatalf("AddPath(%q): %v", p, err)
		}
	}
	return tree
}

func TestQueryParse(t *testing.T) {
	record := `{
		"f1": true,
		"f2": {
			"e2": "\"foo\\",
			"e1": { "c1": null }
		},
		"f3": [ true, "10", null ]
	}`

	tree := queryTree(t, "$.f1", "$.f2.e1", "$.f3")
	results, err := NewQueryParser(BackendScalar, 0, tree).Parse([]byte(record))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	want := []string{`true`, `{ "c1": null }`, `[ true, "10", null ]`}
	for i, w := range want {
		if got := string(results[i]); got != w {
			t.Errorf("results[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestQueryParseSpans(t *testing.T) {
	record := `{ "foo": "bar", "baz": { "piyo": "fuga", "hoge": [null] } }`

	tree := queryTree(t, "$.foo", "$.baz.hoge")
	results, err := NewQueryParser(BackendSWAR, 0, tree).Parse([]byte(record))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := string(results[0]); got != `"bar"` {
		t.Errorf("$.foo = %q", got)
	}
	if got := string(results[1]); got != `[null]` {
		t.Errorf("$.baz.hoge = %q", got)
	}
}

func TestQueryAbsentKeys(t *testing.T) {
	record := `{"a": 1, "b": {"c": 2}}`

	tree := queryTree(t, "$.a", "$.missing", "$.b.missing", "$.a.c")
	results, err := NewQueryParser(BackendScalar, 0, tree).Parse([]byte(record))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := string(results[0]); got != "1" {
		t.Errorf("$.a = %q", got)
	}
	for i := 1; i < len(results); i++ {
		if results[i] != nil {
			t.Errorf("results[%d] = %q, want nil", i, results[i])
		}
	}
}

func TestQueryPrefixPath(t *testing.T) {
	record := `{"a": {"b": 1, "c": 2}}`

	tree := queryTree(t, "$.a.b", "$.a")
	results, err := NewQueryParser(BackendScalar, 0, tree).Parse([]byte(record))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := string(results[0]); got != "1" {
		t.Errorf("$.a.b = %q", got)
	}
	if got := string(results[1]); got != `{"b": 1, "c": 2}` {
		t.Errorf("$.a = %q", got)
	}
}

func TestQueryEarlyExit(t *testing.T) {
	// The requested field comes first; the later malformed-looking but
	// well-quoted noise must never be visited once all paths are filled.
	record := `{"want": 7, "noise": ":::,,,{", "more": [1, 2, 3]}`

	tree := queryTree(t, "$.want")
	results, err := NewQueryParser(BackendSWAR, 0, tree).Parse([]byte(record))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := string(results[0]); got != "7" {
		t.Errorf("$.want = %q", got)
	}
}

func TestQueryErrors(t *testing.T) {
	tree := queryTree(t, "$.foo")
	qp := NewQueryParser(BackendScalar, 0, tree)

	tests := []struct {
		name  string
		input string
		kind  ParseErrorKind
	}{
		{"non-object root", `[1, 2]`, ParseErrUnexpectedToken},
		{"empty input", ``, ParseErrUnexpectedToken},
		{"missing close brace", `{ "foo": "bar"`, ParseErrUnbalancedBrackets},
		{"unterminated string", `{"foo": "bar`, ParseErrUnterminatedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := qp.Parse([]byte(tt.input))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.input)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error type %T", err)
			}
			if pe.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", pe.Kind, tt.kind)
			}
		})
	}
}

func TestQueryDeepPathBeyondIndex(t *testing.T) {
	// A path deeper than MaxIndexLevel: the levels past the index range
	// resolve through the scalar rescan.
	depth := MaxIndexLevel + 6
	var doc, path strings.Builder
	path.WriteString("$")
	for i := 0; i < depth; i++ {
		doc.WriteString(`{"k":`)
		path.WriteString(".k")
	}
	doc.WriteString(`"found"`)
	doc.WriteString(strings.Repeat("}", depth))

	tree := queryTree(t, path.String())
	results, err := NewQueryParser(BackendScalar, 0, tree).Parse([]byte(doc.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := string(results[0]); got != `"found"` {
		t.Errorf("deep value = %q", got)
	}
}

func TestQueryLevelInvariance(t *testing.T) {
	record := `{"a": {"b": {"c": 1}}, "d": "x"}`
	tree := queryTree(t, "$.a.b.c", "$.d")

	var want [][]byte
	for _, level := range []int{0, 3, 10, MaxIndexLevel} {
		results, err := NewQueryParser(BackendScalar, level, tree).Parse([]byte(record))
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if want == nil {
			want = results
			continue
		}
		for i := range results {
			if string(results[i]) != string(want[i]) {
				t.Errorf("level %d results[%d] = %q, want %q", level, i, results[i], want[i])
			}
		}
	}
}

func TestQueryAgainstFullParse(t *testing.T) {
	record := `{"id":17,"user":{"name":"rey","tags":["a","b"],"meta":{"ok":true}},"score":9.5}`
	paths := []string{"$.id", "$.user.name", "$.user.meta", "$.score", "$.user.tags"}

	tree := queryTree(t, paths...)
	results, err := NewQueryParser(BackendAuto, 0, tree).Parse([]byte(record))
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	full := mustParse(t, record)
	for i, p := range paths {
		cur := full
		for _, field := range strings.Split(p[2:], ".") {
			next, ok := cur.Member(field)
			if !ok {
				t.Fatalf("%s missing in full parse", p)
			}
			cur = next
		}
		if got := string(results[i]); got != string(cur.Raw()) {
			t.Errorf("%s: query span %q, full parse raw %q", p, got, cur.Raw())
		}
	}
}

func TestQueryAgainstGJSON(t *testing.T) {
	record := `{"a":{"x":1,"y":"two"},"b":[true,null],"c":"end","d":{"e":{"f":-3.25}}}`
	paths := []string{"$.a.x", "$.a.y", "$.b", "$.c", "$.d.e.f", "$.d.e"}

	tree := queryTree(t, paths...)
	results, err := NewQueryParser(BackendSWAR, 0, tree).Parse([]byte(record))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	for i, p := range paths {
		want := gjson.Get(record, p[2:]).Raw
		if got := string(results[i]); got != want {
			t.Errorf("%s = %q, want %q", p, got, want)
		}
	}
}
