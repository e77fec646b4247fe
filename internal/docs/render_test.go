package docs

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const sampleDoc = "# Button\n\nA **clickable** button. See [Stack](/docs/stack).\n\n" +
	"## Usage\n\n```tsx live\n<Button onClick={() => alert(\"<hi>\")}>Go</Button>\n```\n\n" +
	"## Props\n\n| Prop | Type |\n| --- | --- |\n| variant | string |\n"

func renderNodes(t *testing.T, sections []Section) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(context.Background(), &buf, sections))

	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc
}

func collect(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestRenderHTMLStructure(t *testing.T) {
	doc := renderNodes(t, Parse(sampleDoc))

	assert.Len(t, collect(doc, "section"), 3)
	require.Len(t, collect(doc, "h1"), 1)
	assert.Equal(t, "Button", text(collect(doc, "h1")[0]))
	assert.Len(t, collect(doc, "h2"), 2)
	assert.Len(t, collect(doc, "strong"), 1)

	links := collect(doc, "a")
	require.Len(t, links, 1)
	assert.Equal(t, "/docs/stack", attr(links[0], "href"))

	codes := collect(doc, "code")
	require.Len(t, codes, 1)
	assert.Equal(t, "language-tsx", attr(codes[0], "class"))
	assert.Equal(t, "live", attr(codes[0], "data-meta"))
	assert.Equal(t, `<Button onClick={() => alert("<hi>")}>Go</Button>`, text(codes[0]))

	assert.Len(t, collect(doc, "th"), 2)
	assert.Len(t, collect(doc, "td"), 2)
}

func TestRenderHTMLNeverEmitsInjectedMarkup(t *testing.T) {
	sections := []Section{{
		Title:   `<img src=x onerror=alert(1)>`,
		Level:   9,
		Content: `<script>alert(1)</script> [x](javascript:alert(1)) [y](" onmouseover="alert(1))`,
		Code:    []CodeBlock{{Code: "</code><script>x</script>", Language: `x" onclick="y`, Meta: `"><b>`}},
	}}

	doc := renderNodes(t, sections)

	assert.Empty(t, collect(doc, "script"))
	assert.Empty(t, collect(doc, "img"))
	assert.Empty(t, collect(doc, "b"))
	assert.Empty(t, collect(doc, "a"))
	assert.Len(t, collect(doc, "h6"), 1, "levels are clamped")

	for _, code := range collect(doc, "code") {
		assert.Empty(t, attr(code, "onclick"))
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(context.Background(), &buf, nil))
	assert.Equal(t, `<div class="markdown"></div>`, buf.String())
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal(sampleDoc, TerminalOptions{Width: 60, Style: "notty"})
	require.NoError(t, err)

	assert.Contains(t, out, "Button")
	assert.Contains(t, out, "Usage")
	assert.Contains(t, out, "variant")
}
