package docs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Section
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "text before first heading is dropped",
			input: "intro\n\n```tsx\n<X />\n```\n# Button\nbody",
			want:  []Section{{Title: "Button", Level: 1, Content: "body"}},
		},
		{
			name:  "levels and trimmed content",
			input: "# Title\n\n  first  \n\n## Usage\n\nsecond\n\n###### Deep\n",
			want: []Section{
				{Title: "Title", Level: 1, Content: "first"},
				{Title: "Usage", Level: 2, Content: "second"},
				{Title: "Deep", Level: 6},
			},
		},
		{
			name:  "seven hashes is not a heading",
			input: "# A\n####### not a heading",
			want:  []Section{{Title: "A", Level: 1, Content: "####### not a heading"}},
		},
		{
			name:  "heading needs a space",
			input: "# A\n#hashtag",
			want:  []Section{{Title: "A", Level: 1, Content: "#hashtag"}},
		},
		{
			name:  "code block with language and meta",
			input: "## Example\nSome text\n```tsx live\n<Button>Hi</Button>\n# not a heading\n```\nafter",
			want: []Section{{
				Title:   "Example",
				Level:   2,
				Content: "Some text\nafter",
				Code: []CodeBlock{{
					Code:     "<Button>Hi</Button>\n# not a heading",
					Language: "tsx",
					Meta:     "live",
				}},
			}},
		},
		{
			name:  "bare fence",
			input: "# A\n```\nplain\n```",
			want:  []Section{{Title: "A", Level: 1, Code: []CodeBlock{{Code: "plain"}}}},
		},
		{
			name:  "indented fence",
			input: "# A\n  ```bash\n  npm i\n  ```",
			want:  []Section{{Title: "A", Level: 1, Code: []CodeBlock{{Code: "  npm i", Language: "bash"}}}},
		},
		{
			name:  "unterminated code block is dropped",
			input: "# A\ntext\n```go\nfunc main() {}",
			want:  []Section{{Title: "A", Level: 1, Content: "text"}},
		},
		{
			name:  "crlf line endings",
			input: "# A\r\nline\r\n",
			want:  []Section{{Title: "A", Level: 1, Content: "line"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMultipleCodeBlocksKeepOrder(t *testing.T) {
	got := Parse("# A\n```js\none\n```\n```ts\ntwo\n```")
	want := []CodeBlock{{Code: "one", Language: "js"}, {Code: "two", Language: "ts"}}

	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	if diff := cmp.Diff(want, got[0].Code); diff != "" {
		t.Errorf("code blocks mismatch (-want +got):\n%s", diff)
	}
}
