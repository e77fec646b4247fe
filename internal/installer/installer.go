// Package installer runs the project's package manager to add the peer
// dependencies components rely on.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/lib-shared/lib-shared/internal/logging"
	"github.com/lib-shared/lib-shared/internal/validation"
)

// DefaultTimeout bounds a package manager run.
const DefaultTimeout = 2 * time.Minute

// PackageManager names a supported JavaScript package manager.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	PNPM PackageManager = "pnpm"
)

// allowedManagers is the fixed set of executables the installer may start.
var allowedManagers = map[string]bool{
	string(NPM):  true,
	string(Yarn): true,
	string(PNPM): true,
}

// lockFiles is probed in order; the first match wins.
var lockFiles = []struct {
	file    string
	manager PackageManager
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
}

// DetectPackageManager picks the package manager from the lock file present
// in dir, falling back to npm.
func DetectPackageManager(dir string) PackageManager {
	for _, lf := range lockFiles {
		if info, err := os.Stat(filepath.Join(dir, lf.file)); err == nil && !info.IsDir() {
			return lf.manager
		}
	}
	return NPM
}

// AddVerb returns the sub-command that adds packages for the manager.
func (pm PackageManager) AddVerb() string {
	if pm == NPM {
		return "install"
	}
	return "add"
}

// Runner executes a shell command line.
type Runner interface {
	Run(ctx context.Context, dir, commandLine string) error
}

// ShellRunner runs command lines through the platform shell with the given
// standard streams.
type ShellRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r *ShellRunner) Run(ctx context.Context, dir, commandLine string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", commandLine)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", commandLine)
	}
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Installer installs a fixed dependency list into a project.
type Installer struct {
	projectDir   string
	dependencies []string
	timeout      time.Duration
	runner       Runner
	logger       logging.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(i *Installer) {
		if timeout > 0 {
			i.timeout = timeout
		}
	}
}

// WithRunner replaces the shell runner.
func WithRunner(r Runner) Option {
	return func(i *Installer) {
		if r != nil {
			i.runner = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(i *Installer) {
		if logger != nil {
			i.logger = logger.WithComponent("installer")
		}
	}
}

// New creates an installer for projectDir. The dependency list is copied.
func New(projectDir string, dependencies []string, opts ...Option) *Installer {
	deps := make([]string, len(dependencies))
	copy(deps, dependencies)

	i := &Installer{
		projectDir:   projectDir,
		dependencies: deps,
		timeout:      DefaultTimeout,
		runner:       &ShellRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr},
		logger:       logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// PackageManager reports the manager Install would use.
func (i *Installer) PackageManager() PackageManager {
	return DetectPackageManager(i.projectDir)
}

// Command builds the validated install command line.
func (i *Installer) Command() (string, error) {
	pm := i.PackageManager()
	if err := validation.ValidateCommand(string(pm), allowedManagers); err != nil {
		return "", liberrors.NewSecurityError(liberrors.ErrCodeCommandNotAllowed, err.Error())
	}

	for _, dep := range i.dependencies {
		if err := validation.ValidatePackageName(dep); err != nil {
			return "", liberrors.NewValidationError(liberrors.ErrCodeInvalidPackage, err.Error()).
				WithContext("package", dep)
		}
		if err := validation.ValidateArgument(dep); err != nil {
			return "", liberrors.ErrCommandInjection(dep)
		}
	}

	parts := append([]string{string(pm), pm.AddVerb()}, i.dependencies...)
	return strings.Join(parts, " "), nil
}

// ManualCommand is the command users can run themselves when Install fails.
func (i *Installer) ManualCommand() string {
	return strings.Join(append([]string{"npm", "install"}, i.dependencies...), " ")
}

// Install runs the package manager in the project directory. A nil error
// means the process exited successfully within the timeout.
func (i *Installer) Install(ctx context.Context) error {
	if len(i.dependencies) == 0 {
		return nil
	}

	commandLine, err := i.Command()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	i.logger.Debug(ctx, "Running package manager", "command", commandLine, "dir", i.projectDir)

	if err := i.runner.Run(ctx, i.projectDir, commandLine); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return liberrors.ErrInterrupted("dependency installation", ctx.Err()).
				WithContext("command", commandLine)
		}
		msg := "dependency installation failed"
		if ctx.Err() == context.DeadlineExceeded {
			msg = fmt.Sprintf("dependency installation timed out after %s", i.timeout)
		}
		return liberrors.NewInstallError(liberrors.ErrCodeInstallFailed, msg, err).
			WithContext("command", commandLine).
			WithHint("Install the dependencies manually: " + i.ManualCommand())
	}

	return nil
}
