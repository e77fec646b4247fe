package scaffolding

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UtilsContent is written to src/lib/utils.ts the first time a component is added.
const UtilsContent = `import { type ClassValue, clsx } from "clsx";
import { twMerge } from "tailwind-merge";

export function cn(...inputs: ClassValue[]) {
  return twMerge(clsx(inputs));
}
`

// UsageTemplate describes how to use an installed component.
type UsageTemplate struct {
	Name    string
	Example string
}

// UsageContext holds the values a usage template is executed with.
type UsageContext struct {
	ComponentName string
	Identifier    string
	ImportPath    string
}

const importLine = `import { {{.Identifier}} } from "{{.ImportPath}}";`

// GetUsageTemplates returns the usage examples for the built-in components.
func GetUsageTemplates() map[string]UsageTemplate {
	return map[string]UsageTemplate{
		"button": {
			Name:    "button",
			Example: `<{{.Identifier}} variant="default">Click me</{{.Identifier}}>`,
		},
		"container": {
			Name:    "container",
			Example: `<{{.Identifier}} maxWidth="lg">...</{{.Identifier}}>`,
		},
		"stack": {
			Name:    "stack",
			Example: `<{{.Identifier}} direction="row" gap="md">...</{{.Identifier}}>`,
		},
		"use-responsive": {
			Name:    "use-responsive",
			Example: `const breakpoint = {{.Identifier}}();`,
		},
	}
}

// Identifier converts a component name to the symbol it exports. Hooks
// ("use-*") become camelCase, everything else PascalCase.
func Identifier(name string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })

	var b strings.Builder
	for i, part := range parts {
		if i == 0 && strings.HasPrefix(name, "use-") {
			b.WriteString(strings.ToLower(part))
			continue
		}
		b.WriteString(caser.String(part))
	}
	return b.String()
}

// ImportPath is the module specifier consumers import a component from.
func ImportPath(name string) string {
	return "@/components/ui/" + name
}

// RenderUsage renders the import line and, when known, an example for name.
func RenderUsage(name string) (string, error) {
	ctx := UsageContext{
		ComponentName: name,
		Identifier:    Identifier(name),
		ImportPath:    ImportPath(name),
	}

	content := importLine
	if tmpl, ok := GetUsageTemplates()[name]; ok {
		content += "\n\n" + tmpl.Example
	}

	t, err := template.New("usage").Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse usage template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to execute usage template: %w", err)
	}

	return buf.String(), nil
}
