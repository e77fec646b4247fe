package validation

import (
	"testing"

	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameValidatorIsValid(t *testing.T) {
	v := NewNameValidator(DefaultAllowList())

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"button", "button", true},
		{"hook", "use-responsive", true},
		{"container", "container", true},
		{"stack", "stack", true},
		{"empty", "", false},
		{"unknown but well formed", "card", false},
		{"upper case variant is not allow-listed", "Button", false},
		{"path traversal", "../../etc/passwd", false},
		{"slash", "ui/button", false},
		{"dot", "button.tsx", false},
		{"space", "button ", false},
		{"shell", "button;rm", false},
		{"url", "https://evil.example/x", false},
		{"nul byte", "button\x00", false},
		{"unicode", "bütton", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsValid(tt.input))
		})
	}
}

func TestNameValidatorValidateErrors(t *testing.T) {
	v := NewNameValidator(DefaultAllowList())

	err := v.Validate("../x")
	require.Error(t, err)
	assert.True(t, liberrors.HasCode(err, liberrors.ErrCodeInvalidComponentName))

	err = v.Validate("card")
	require.Error(t, err)
	assert.True(t, liberrors.HasCode(err, liberrors.ErrCodeUnknownComponent))
	assert.Equal(t, []string{"button", "container", "stack", "use-responsive"}, liberrors.AllowedNames(err))
}

func TestNameValidatorAllowListIsCopied(t *testing.T) {
	list := []string{"button", "stack", "button"}
	v := NewNameValidator(list)

	list[0] = "evil"
	assert.True(t, v.IsValid("button"))
	assert.False(t, v.IsValid("evil"))

	allowed := v.Allowed()
	allowed[0] = "evil"
	assert.Equal(t, []string{"button", "stack"}, v.Allowed())
}

func TestDefaultAllowListFresh(t *testing.T) {
	a := DefaultAllowList()
	a[0] = "changed"
	assert.Equal(t, "button", DefaultAllowList()[0])
}

func TestMatchesNamePattern(t *testing.T) {
	assert.True(t, MatchesNamePattern("Use-Responsive_2"))
	assert.False(t, MatchesNamePattern("a.b"))
	assert.False(t, MatchesNamePattern(""))
}
