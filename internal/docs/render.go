package docs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/charmbracelet/glamour"
)

// Document renders sections as an HTML fragment.
func Document(sections []Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="markdown">`); err != nil {
			return err
		}
		for _, section := range sections {
			if err := SectionView(section).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// SectionView renders one section: heading, formatted body and code blocks.
func SectionView(section Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		level := section.Level
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}

		var b strings.Builder
		b.WriteString(`<section class="section">`)
		fmt.Fprintf(&b, "<h%d>%s</h%d>", level, templ.EscapeString(section.Title), level)

		if section.Content != "" {
			b.WriteString("<div>")
			b.WriteString(FormatContent(section.Content))
			b.WriteString("</div>")
		}

		for _, block := range section.Code {
			b.WriteString("<pre><code")
			if block.Language != "" {
				fmt.Fprintf(&b, ` class="language-%s"`, templ.EscapeString(block.Language))
			}
			if block.Meta != "" {
				fmt.Fprintf(&b, ` data-meta="%s"`, templ.EscapeString(block.Meta))
			}
			b.WriteString(">")
			b.WriteString(templ.EscapeString(block.Code))
			b.WriteString("</code></pre>")
		}

		b.WriteString("</section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// RenderHTML writes the HTML fragment for sections to w.
func RenderHTML(ctx context.Context, w io.Writer, sections []Section) error {
	return Document(sections).Render(ctx, w)
}

// TerminalOptions configures RenderTerminal.
type TerminalOptions struct {
	// Width wraps output at this column; 0 disables wrapping.
	Width int
	// Style is a glamour standard style ("dark", "light", "notty", ...).
	// Empty selects one from the terminal background.
	Style string
}

// RenderTerminal renders markdown for reading in a terminal.
func RenderTerminal(markdown string, opts TerminalOptions) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if opts.Style != "" {
		styleOpt = glamour.WithStandardStyle(opts.Style)
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(opts.Width))
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
