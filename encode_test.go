package mison

import (
	"encoding/json"
	"testing"
)

func TestAppendJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"compact object", `{"a":1,"b":[true,null]}`, `{"a":1,"b":[true,null]}`},
		{"whitespace dropped", `{ "a" : 1 , "b" : 2 }`, `{"a":1,"b":2}`},
		{"number spelling kept", `[1.50, -0.0, 2e3]`, `[1.50,-0.0,2e3]`},
		{"escape normalized", `"aA\/b"`, `"aA/b"`},
		{"quote re-escaped", `{"k\"": "v\\"}`, `{"k\"":"v\\"}`},
		{"control escaped", "\"a\\u0001b\"", `"a\u0001b"`},
		{"empty containers", `{"a":[],"b":{}}`, `{"a":[],"b":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustParse(t, tt.input)
			if got := string(v.AppendJSON(nil)); got != tt.want {
				t.Errorf("AppendJSON = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{ "foo": "bar", "baz": { "piyo": "fuga", "hoge": [null] } }`,
		`[0, 1.5, -2e10, "s", {"nested": [[], {}]}]`,
		`{"unicode": "日本語 é 😀", "esc": "\n\t\"\\"}`,
	}

	for _, input := range inputs {
		first := mustParse(t, input).AppendJSON(nil)

		// Serializing the reparse of the output must be a fixpoint.
		second := mustParse(t, string(first)).AppendJSON(nil)
		if string(first) != string(second) {
			t.Errorf("round trip diverged:\n%s\n%s", first, second)
		}

		if !json.Valid(first) {
			t.Errorf("output is not valid JSON: %s", first)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	v := mustParse(t, `{"a": [1, "x"]}`)

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got := string(out); got != `{"a":[1,"x"]}` {
		t.Errorf("Marshal = %s", got)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`null`, "null"},
		{`3.14`, "3.14"},
		{`"hi"`, `"hi"`},
		{`[1,2]`, "[1,2]"},
	}

	for _, tt := range tests {
		if got := mustParse(t, tt.input).String(); got != tt.want {
			t.Errorf("String(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
