package handlers

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"summary": "ok"}`, `{"summary": "ok"}`},
		{"Segue a análise:\n```json\n{\"summary\": \"ok\"}\n```", `{"summary": "ok"}`},
		{"prefix {\"a\": {\"b\": 1}} suffix", `{"a": {"b": 1}}`},
		{"no json here", ""},
		{"}{", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := extractJSON(c.in); got != c.want {
			t.Fatalf("extractJSON(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}
