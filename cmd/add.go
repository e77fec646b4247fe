package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lib-shared/lib-shared/internal/console"
	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/lib-shared/lib-shared/internal/registry"
	"github.com/lib-shared/lib-shared/internal/scaffolding"
	"github.com/lib-shared/lib-shared/internal/validation"
	"github.com/spf13/cobra"
)

type addOptions struct {
	skipInstall bool
	diff        bool
}

func newAddCmd(a *app) *cobra.Command {
	opts := &addOptions{}

	addCmd := &cobra.Command{
		Use:   "add <component>",
		Short: "Add a component to your project",
		Long: `Download a component from the registry and write it to
src/components/ui/<component>.tsx.

The peer dependencies (class-variance-authority, clsx, tailwind-merge) are
installed with the package manager matching your lock file, and
src/lib/utils.ts is created if it does not exist. Existing files are never
overwritten.

Examples:
  lib-shared add button
  lib-shared add use-responsive --skip-install
  lib-shared add button --diff      # Compare the local copy with the registry`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runAdd(cmd, a, args[0], opts)
		},
	}

	addCmd.Flags().BoolVar(&opts.skipInstall, "skip-install", false, "Do not run the package manager")
	addCmd.Flags().BoolVar(&opts.diff, "diff", false, "Show differences between installed files and the registry without writing")

	return addCmd
}

func runAdd(cmd *cobra.Command, a *app, name string, opts *addOptions) error {
	if err := a.load(cmd); err != nil {
		return err
	}

	// Nothing touches the network, disk or a shell before the name is accepted
	if err := a.validator().Validate(name); err != nil {
		return err
	}

	ctx := cmd.Context()
	p := console.NewPrinter(cmd.OutOrStdout())

	client := a.registryClient()
	p.Info("Fetching %s from %s", name, client.BaseURL())
	op := a.logger.StartOperation("fetch_entry")
	entry, err := client.FetchEntry(ctx, name)
	if err != nil {
		op.EndWithError(ctx, err)
		return err
	}
	op.End(ctx)

	m := a.materializer()
	if opts.diff {
		return showDiff(p, m, entry)
	}

	p.Info("Adding %s", entry.Title)

	if opts.skipInstall || a.cfg.Install.Skip {
		p.Warn("Skipping dependency installation")
	} else {
		inst := a.installer(cmd.OutOrStdout(), cmd.ErrOrStderr())
		if command, err := inst.Command(); err == nil {
			p.Info("Installing dependencies: %s", command)
		}
		op := a.logger.StartOperation("install")
		if err := inst.Install(ctx); err != nil {
			op.EndWithError(ctx, err)
			if !liberrors.IsRecoverable(err) {
				return err
			}
			p.Warn("Failed to install dependencies. Install them manually:")
			p.Code(inst.ManualCommand())
		} else {
			op.End(ctx)
			p.Success("Dependencies installed")
		}
	}

	if extra := extraDependencies(entry.Dependencies, a.cfg.Dependencies); len(extra) > 0 {
		p.Warn("%s also needs %s, which are not installed automatically", name, strings.Join(extra, ", "))
	}

	// An interrupt before this point leaves the project untouched
	if err := ctx.Err(); err != nil {
		return liberrors.ErrInterrupted("add "+name, err)
	}

	if written, err := m.EnsureUtilsFile(); err != nil {
		p.Error("%s", err)
	} else if written {
		p.Success("Created %s", scaffolding.UtilsFile)
	}

	if len(entry.Files) == 0 {
		p.Warn("Registry entry for %s has no files", name)
	}

	rel := filepath.ToSlash(filepath.Join(scaffolding.ComponentsDir, name+scaffolding.ComponentExt))
	var failures []error
	for _, file := range entry.Files {
		written, err := m.WriteComponentFile(name, file.Content)
		switch {
		case err != nil:
			p.Error("%s: %s", rel, err)
			failures = append(failures, err)
		case written:
			p.Success("Added %s", rel)
		default:
			p.Warn("%s already exists, skipping", rel)
		}
	}

	if len(failures) > 0 {
		return liberrors.CombineErrors(failures...)
	}

	usage, err := scaffolding.RenderUsage(name)
	if err != nil {
		return liberrors.WrapInternal(err, liberrors.ErrCodeInternalError, "rendering usage hint")
	}
	p.Heading("Usage:")
	p.Code(usage)

	return nil
}

func showDiff(p *console.Printer, m *scaffolding.Materializer, entry *registry.Entry) error {
	rel := filepath.ToSlash(filepath.Join(scaffolding.ComponentsDir, entry.Name+scaffolding.ComponentExt))

	for _, file := range entry.Files {
		diff, err := m.Diff(entry.Name, file.Content)
		if err != nil {
			return err
		}
		if diff == "" {
			p.Success("%s matches the registry (or is not installed)", rel)
			continue
		}
		p.Heading("%s", rel)
		fmt.Fprint(p.Writer(), diff)
	}
	return nil
}

// extraDependencies returns the registry-declared dependencies outside the
// compiled-in list, in declaration order.
func extraDependencies(declared, installed []string) []string {
	known := make(map[string]bool, len(installed))
	for _, dep := range installed {
		known[dep] = true
	}

	var extra []string
	for _, dep := range declared {
		if !known[dep] {
			known[dep] = true
			extra = append(extra, validation.SanitizeInput(dep))
		}
	}
	return extra
}
