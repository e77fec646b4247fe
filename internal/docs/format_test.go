package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "<p>hello</p>"},
		{"bold and italic", "**bold** and *it*", "<p><strong>bold</strong> and <em>it</em></p>"},
		{"inline code", "run `npm i`", "<p>run <code>npm i</code></p>"},
		{"paragraphs and breaks", "a\nb\n\nc", "<p>a<br>b</p><p>c</p>"},
		{"link", "[docs](https://example.com/a?b=1&c=2)", `<p><a href="https://example.com/a?b=1&amp;c=2">docs</a></p>`},
		{"relative link", "[next](/docs/stack)", `<p><a href="/docs/stack">next</a></p>`},
		{"javascript link dropped", "[x](javascript:alert(1))", "<p>x)</p>"},
		{"html is escaped", "<script>alert(1)</script>", "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>"},
		{
			"table",
			"| Prop | Type |\n| --- | --- |\n| size | string |",
			"<p><table><thead><tr><th>Prop</th><th>Type</th></tr></thead><tbody><tr><td>size</td><td>string</td></tr></tbody></table></p>",
		},
		{"table without separator", "| a |\n| b |", "<p>| a |<br>| b |</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatContent(tt.input))
		})
	}
}

func TestIsSafeHref(t *testing.T) {
	safe := []string{"https://example.com", "http://x", "/abs", "rel/path", "#anchor", "?q=1", "a/b:c", "//cdn.example.com/x"}
	unsafe := []string{"", "javascript:alert(1)", "JavaScript:x", "data:text/html,x", "vbscript:x", "java script:x", "a\nb"}

	for _, href := range safe {
		assert.True(t, IsSafeHref(href), href)
	}
	for _, href := range unsafe {
		assert.False(t, IsSafeHref(href), href)
	}
}
