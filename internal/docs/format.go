package docs

import (
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*]+)\*`)
	codePattern   = regexp.MustCompile("`([^`]+)`")
)

// FormatContent turns the inline markdown of a section body into HTML. The
// text is escaped before any markup is added, so the only tags in the result
// are the ones produced here.
func FormatContent(content string) string {
	formatted := templ.EscapeString(content)

	formatted = convertTables(formatted)

	formatted = linkPattern.ReplaceAllStringFunc(formatted, func(match string) string {
		m := linkPattern.FindStringSubmatch(match)
		text, href := m[1], strings.TrimSpace(m[2])
		if !IsSafeHref(href) {
			return text
		}
		return `<a href="` + href + `">` + text + `</a>`
	})

	formatted = boldPattern.ReplaceAllString(formatted, "<strong>$1</strong>")
	formatted = italicPattern.ReplaceAllString(formatted, "<em>$1</em>")
	formatted = codePattern.ReplaceAllString(formatted, "<code>$1</code>")

	formatted = strings.ReplaceAll(formatted, "\n\n", "</p><p>")
	formatted = strings.ReplaceAll(formatted, "\n", "<br>")

	if !strings.HasPrefix(formatted, "<p>") {
		formatted = "<p>" + formatted + "</p>"
	}
	return formatted
}

// IsSafeHref accepts http(s) URLs and scheme-less references (relative paths,
// fragments). The input is expected to be HTML-escaped already.
func IsSafeHref(href string) bool {
	if href == "" {
		return false
	}
	if strings.ContainsAny(href, " \t\r\n\"'<>*`") {
		return false
	}

	lower := strings.ToLower(href)
	colon := strings.Index(lower, ":")
	if colon < 0 {
		return true
	}
	// A colon after the first path, query or fragment delimiter is not a scheme
	if delim := strings.IndexAny(lower, "/?#"); delim >= 0 && delim < colon {
		return true
	}
	scheme := lower[:colon]
	return scheme == "http" || scheme == "https"
}

// convertTables replaces runs of "| a | b |" lines with HTML tables. A run
// without a "---" separator as its second row is left untouched.
func convertTables(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	var rows []string

	flush := func() {
		if len(rows) > 0 {
			result = append(result, buildTable(rows))
			rows = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
			rows = append(rows, trimmed)
			continue
		}
		flush()
		result = append(result, line)
	}
	flush()

	return strings.Join(result, "\n")
}

func buildTable(rows []string) string {
	if len(rows) < 2 || !strings.Contains(rows[1], "---") {
		return strings.Join(rows, "\n")
	}

	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, cell := range tableCells(rows[0]) {
		b.WriteString("<th>" + cell + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range rows[2:] {
		b.WriteString("<tr>")
		for _, cell := range tableCells(row) {
			b.WriteString("<td>" + cell + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func tableCells(row string) []string {
	parts := strings.Split(row, "|")
	cells := parts[1 : len(parts)-1]
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
