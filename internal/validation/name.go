package validation

import (
	"regexp"
	"sort"
	"strings"

	liberrors "github.com/lib-shared/lib-shared/internal/errors"
)

// componentNamePattern is matched against the lower-cased name, which makes
// the check case-insensitive.
var componentNamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// DefaultAllowList returns the component names the CLI may install.
// A fresh slice is returned on every call.
func DefaultAllowList() []string {
	return []string{"button", "use-responsive", "container", "stack"}
}

// NameValidator checks user-supplied component names against the naming
// pattern and a fixed allow-list. The allow-list is copied at construction
// and cannot change afterwards.
type NameValidator struct {
	allowed map[string]struct{}
	names   []string
}

// NewNameValidator creates a validator for the given allow-list.
func NewNameValidator(allowed []string) *NameValidator {
	v := &NameValidator{allowed: make(map[string]struct{}, len(allowed))}
	for _, name := range allowed {
		if _, dup := v.allowed[name]; dup {
			continue
		}
		v.allowed[name] = struct{}{}
		v.names = append(v.names, name)
	}
	sort.Strings(v.names)
	return v
}

// IsValid reports whether name matches the naming pattern and is allow-listed.
func (v *NameValidator) IsValid(name string) bool {
	return v.Validate(name) == nil
}

// Validate is IsValid with a typed error describing the failure.
func (v *NameValidator) Validate(name string) error {
	if name == "" || !MatchesNamePattern(name) {
		return liberrors.ErrInvalidComponentName(name)
	}
	if _, ok := v.allowed[name]; !ok {
		return liberrors.ErrUnknownComponent(name, v.Allowed())
	}
	return nil
}

// Allowed returns a sorted copy of the allow-list.
func (v *NameValidator) Allowed() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// MatchesNamePattern reports whether name only uses letters, digits, '-' and '_'.
func MatchesNamePattern(name string) bool {
	return componentNamePattern.MatchString(strings.ToLower(name))
}
