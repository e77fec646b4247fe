// Package scaffolding writes registry content into a consumer project. Every
// write is confined to the components directory, apart from the single shared
// utility file, and existing files are never overwritten.
package scaffolding

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/lib-shared/lib-shared/internal/logging"
	"github.com/lib-shared/lib-shared/internal/validation"
)

const (
	// ComponentsDir is relative to the project directory.
	ComponentsDir = "src/components/ui"
	// UtilsFile is relative to the project directory.
	UtilsFile = "src/lib/utils.ts"
	// ComponentExt is the extension of written component files.
	ComponentExt = ".tsx"

	dirMode  fs.FileMode = 0755
	fileMode fs.FileMode = 0644
)

// NameValidator rejects component names that may not be written.
type NameValidator interface {
	Validate(name string) error
}

// Materializer writes component files into a project.
type Materializer struct {
	projectDir string
	validator  NameValidator
	logger     logging.Logger
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(m *Materializer) {
		if logger != nil {
			m.logger = logger.WithComponent("scaffolding")
		}
	}
}

// NewMaterializer creates a materializer rooted at projectDir.
func NewMaterializer(projectDir string, validator NameValidator, opts ...Option) *Materializer {
	m := &Materializer{
		projectDir: projectDir,
		validator:  validator,
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ComponentsPath is the directory component files are written to.
func (m *Materializer) ComponentsPath() string {
	return filepath.Join(m.projectDir, filepath.FromSlash(ComponentsDir))
}

// UtilsPath is the location of the shared utility file.
func (m *Materializer) UtilsPath() string {
	return filepath.Join(m.projectDir, filepath.FromSlash(UtilsFile))
}

// Destination validates name and returns the absolute path of its component
// file, guaranteed to lie inside ComponentsPath.
func (m *Materializer) Destination(name string) (string, error) {
	if err := m.validator.Validate(name); err != nil {
		return "", err
	}

	base := m.ComponentsPath()
	target := filepath.Clean(filepath.Join(base, name+ComponentExt))

	dest, err := validation.ValidatePathWithin(base, target)
	if err != nil {
		return "", liberrors.ErrPathEscape(target, base).WithCause(err)
	}
	return dest, nil
}

// WriteComponentFile writes content to src/components/ui/<name>.tsx. It
// returns false with a nil error when the file already exists.
func (m *Materializer) WriteComponentFile(name, content string) (bool, error) {
	dest, err := m.Destination(name)
	if err != nil {
		return false, err
	}

	written, err := writeExclusive(dest, content)
	if err != nil {
		return false, liberrors.WrapIO(err, liberrors.ErrCodeWriteFailed, "cannot write component file").
			WithFile(dest).WithComponent(name)
	}

	ctx := context.Background()
	if written {
		m.logger.Debug(ctx, "Wrote component file", "path", dest, "bytes", len(content))
	} else {
		m.logger.Debug(ctx, "Component file exists, skipping", "path", dest)
	}
	return written, nil
}

// EnsureUtilsFile creates src/lib/utils.ts with UtilsContent unless it exists.
func (m *Materializer) EnsureUtilsFile() (bool, error) {
	dest := m.UtilsPath()

	written, err := writeExclusive(dest, UtilsContent)
	if err != nil {
		return false, liberrors.WrapIO(err, liberrors.ErrCodeWriteFailed, "cannot write utility file").
			WithFile(dest)
	}
	if written {
		m.logger.Debug(context.Background(), "Wrote utility file", "path", dest)
	}
	return written, nil
}

// writeExclusive creates path with content. It reports false without error
// when path already exists, including when another process created it first.
func writeExclusive(path, content string) (bool, error) {
	if _, err := os.Lstat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(path)
		return false, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, err
	}
	return true, nil
}
