// Package docs parses component documentation written in markdown and renders
// it as HTML fragments or styled terminal output.
package docs

import (
	"regexp"
	"strings"
)

// Section is a heading and everything up to the next heading.
type Section struct {
	Title   string      `json:"title"`
	Level   int         `json:"level"`
	Content string      `json:"content"`
	Code    []CodeBlock `json:"code,omitempty"`
}

// CodeBlock is a fenced code block. For a fence line such as "```tsx live",
// Language is "tsx" and Meta is "live".
type CodeBlock struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
	Meta     string `json:"meta,omitempty"`
}

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	fencePattern   = regexp.MustCompile("^```(\\w+)?\\s*(.*)$")
)

const fence = "```"

// Parse splits markdown into sections on ATX headings. Text and code blocks
// before the first heading are dropped, as is an unterminated code block.
// Lines inside code blocks are never treated as headings.
func Parse(markdown string) []Section {
	var (
		sections []Section
		current  *Section
		content  []string
		inCode   bool
		code     []string
		block    CodeBlock
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(content, "\n"))
		sections = append(sections, *current)
	}

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, fence) {
			inCode = !inCode
			if inCode {
				code = code[:0]
				block = CodeBlock{}
				if m := fencePattern.FindStringSubmatch(trimmed); m != nil {
					block.Language = m[1]
					block.Meta = strings.TrimSpace(m[2])
				}
			} else if current != nil {
				block.Code = strings.Join(code, "\n")
				current.Code = append(current.Code, block)
			}
			continue
		}

		if inCode {
			code = append(code, line)
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[2]) != "" {
			flush()
			current = &Section{
				Title: strings.TrimSpace(m[2]),
				Level: len(m[1]),
			}
			content = content[:0]
			continue
		}

		if current != nil {
			content = append(content, line)
		}
	}

	flush()
	return sections
}
