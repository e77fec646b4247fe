package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lib-shared/lib-shared/internal/config"
	"github.com/lib-shared/lib-shared/internal/console"
	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/lib-shared/lib-shared/internal/installer"
	"github.com/lib-shared/lib-shared/internal/logging"
	"github.com/lib-shared/lib-shared/internal/registry"
	"github.com/lib-shared/lib-shared/internal/scaffolding"
	"github.com/lib-shared/lib-shared/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *logging.LibLogger

	// Overridable in tests.
	httpClient *http.Client
	runner     installer.Runner
}

type appOption func(*app)

func withHTTPClient(hc *http.Client) appOption {
	return func(a *app) { a.httpClient = hc }
}

func withRunner(r installer.Runner) appOption {
	return func(a *app) { a.runner = r }
}

// newRootCmd builds the command tree. Each call returns an independent tree
// with its own viper instance.
func newRootCmd(opts ...appOption) *cobra.Command {
	a := &app{v: viper.New()}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:   liberrors.CLIName,
		Short: "Add Lib Shared React components to your project",
		Long: `lib-shared copies components from the Lib Shared registry into your
project, installs the peer dependencies they need and creates the shared
utility file once.

Quick Start:
  lib-shared list                 List the available components
  lib-shared add button           Add src/components/ui/button.tsx
  lib-shared docs button.md       Render component documentation

Components are written to src/components/ui/<name>.tsx; existing files are
never overwritten.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .lib-shared.yml, can also use LIB_SHARED_CONFIG_FILE env var)")
	flags.String("dir", "", "project directory (default is the current directory)")
	flags.String("registry", "", "registry base URL")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	_ = a.v.BindPFlag("project.dir", flags.Lookup("dir"))
	_ = a.v.BindPFlag("registry.url", flags.Lookup("registry"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newDocsCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// load reads the configuration once per invocation. Commands that only print
// help or version information never call it.
func (a *app) load(cmd *cobra.Command) error {
	if a.cfg != nil {
		return nil
	}

	config.SetDefaults(a.v)
	config.BindEnv(a.v)

	explicit := a.cfgFile
	if explicit == "" {
		explicit = os.Getenv(config.EnvPrefix + "_CONFIG_FILE")
	}
	if explicit != "" {
		a.v.SetConfigFile(explicit)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(config.FileName)
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return liberrors.WrapConfig(err, liberrors.ErrCodeConfigInvalid, "cannot read configuration file")
		}
	}

	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return liberrors.WrapConfig(err, liberrors.ErrCodeConfigInvalid, "invalid configuration")
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	a.cfg = cfg
	a.logger = logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug(cmd.Context(), "Using config file", "path", used)
	}
	return nil
}

func (a *app) validator() *validation.NameValidator {
	return validation.NewNameValidator(a.cfg.Components)
}

func (a *app) registryClient() *registry.Client {
	opts := []registry.Option{registry.WithLogger(a.logger)}
	if a.httpClient != nil {
		opts = append(opts, registry.WithHTTPClient(a.httpClient))
	}
	opts = append(opts, registry.WithTimeout(a.cfg.Registry.Timeout))
	return registry.NewClient(a.cfg.Registry.URL, opts...)
}

func (a *app) installer(out, errOut io.Writer) *installer.Installer {
	runner := a.runner
	if runner == nil {
		runner = &installer.ShellRunner{Stdin: os.Stdin, Stdout: out, Stderr: errOut}
	}
	return installer.New(a.cfg.Project.Dir, a.cfg.Dependencies,
		installer.WithRunner(runner),
		installer.WithTimeout(a.cfg.Install.Timeout),
		installer.WithLogger(a.logger),
	)
}

func (a *app) materializer() *scaffolding.Materializer {
	return scaffolding.NewMaterializer(a.cfg.Project.Dir, a.validator(), scaffolding.WithLogger(a.logger))
}

// Execute runs the CLI with SIGINT/SIGTERM cancelling the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, newRootCmd())
}

// execute runs root and prints any error with its recovery hint on stderr.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		reportError(console.NewPrinter(root.ErrOrStderr()), err)
	}
	return err
}

func reportError(p *console.Printer, err error) {
	if liberrors.HasCode(err, liberrors.ErrCodeInterrupted) {
		p.Warn("%s", liberrors.Describe(err))
	} else {
		p.Error("%s", liberrors.Describe(err))
	}
	if hint := liberrors.HintFor(err); hint != "" {
		p.Hint("%s", hint)
	}
}
