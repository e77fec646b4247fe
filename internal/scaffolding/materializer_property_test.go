//go:build property

package scaffolding

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/lib-shared/lib-shared/internal/validation"
)

// TestMaterializerContainmentProperties checks that no input can produce a
// destination outside the components directory.
func TestMaterializerContainmentProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	dir := t.TempDir()
	base := filepath.Join(dir, "src", "components", "ui")
	m := NewMaterializer(dir, validation.NewNameValidator(validation.DefaultAllowList()))

	hostile := gen.OneConstOf("../", "..\\", "/", "\x00", "..", "%2e%2e", "~", " ")
	nameGen := gen.SliceOf(gen.OneGenOf(gen.AlphaString(), hostile)).Map(func(parts []string) string {
		return strings.Join(parts, "")
	})

	properties.Property("destinations never leave the components directory", prop.ForAll(
		func(name string) bool {
			dest, err := m.Destination(name)
			if err != nil {
				return true
			}
			rel, err := filepath.Rel(base, dest)
			return err == nil && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
		},
		nameGen,
	))

	properties.Property("rejected names write nothing", prop.ForAll(
		func(name string) bool {
			if validation.NewNameValidator(validation.DefaultAllowList()).IsValid(name) {
				return true
			}
			written, err := m.WriteComponentFile(name, "x")
			if written || err == nil {
				return false
			}
			_, statErr := os.Stat(filepath.Join(dir, "src"))
			return os.IsNotExist(statErr)
		},
		nameGen,
	))

	properties.TestingRun(t)
}
