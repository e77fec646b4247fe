package scaffolding

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff compares the installed file for name with content and returns a
// line-oriented diff with "-" for local lines and "+" for registry lines.
// It returns "" when the file is missing or identical.
func (m *Materializer) Diff(name, content string) (string, error) {
	dest, err := m.Destination(name)
	if err != nil {
		return "", err
	}

	local, err := os.ReadFile(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", liberrors.WrapIO(err, liberrors.ErrCodeWriteFailed, "cannot read component file").WithFile(dest)
	}

	return LineDiff(string(local), content), nil
}

// LineDiff renders a unified-style line diff between before and after.
func LineDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}
