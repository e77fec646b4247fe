package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lib-shared/lib-shared/internal/console"
	"github.com/lib-shared/lib-shared/internal/docs"
	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/lib-shared/lib-shared/internal/watcher"
	"github.com/spf13/cobra"
)

var docsFormats = []string{"html", "terminal"}

type docsOptions struct {
	format string
	out    string
	watch  bool
	width  int
	style  string
}

func newDocsCmd(a *app) *cobra.Command {
	opts := &docsOptions{}

	docsCmd := &cobra.Command{
		Use:   "docs <file.md>",
		Short: "Render component documentation",
		Long: `Parse a component's markdown documentation into sections and render it
either as an HTML fragment or for reading in the terminal.

Examples:
  lib-shared docs button.md                        # HTML to stdout
  lib-shared docs button.md --out button.html      # HTML to a file
  lib-shared docs button.md --format terminal      # Styled terminal output
  lib-shared docs button.md --out b.html --watch   # Re-render on save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocs(cmd, a, args[0], opts)
		},
	}

	docsCmd.Flags().StringVarP(&opts.format, "format", "f", "html", "Output format (html|terminal)")
	docsCmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write output to a file instead of stdout")
	docsCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-render whenever the file changes")
	docsCmd.Flags().IntVar(&opts.width, "width", 80, "Wrap terminal output at this column (0 disables wrapping)")
	docsCmd.Flags().StringVar(&opts.style, "style", "", "Terminal style (dark, light, notty; default detects the terminal)")
	AddFlagValidation(docsCmd, "format", func(value string) error {
		return ValidateFormatWithSuggestion(value, docsFormats)
	})

	return docsCmd
}

func runDocs(cmd *cobra.Command, a *app, path string, opts *docsOptions) error {
	if err := a.load(cmd); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := renderDocs(ctx, cmd.OutOrStdout(), path, opts); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(100*time.Millisecond, a.logger)
	if err != nil {
		return liberrors.WrapInternal(err, liberrors.ErrCodeInternalError, "cannot start file watcher")
	}
	defer fw.Stop()

	if err := fw.WatchFile(path); err != nil {
		return liberrors.WrapIO(err, liberrors.ErrCodeInvalidPath, "cannot watch "+path)
	}

	p := console.NewPrinter(cmd.ErrOrStderr())
	fw.AddHandler(func(ctx context.Context, events []watcher.ChangeEvent) error {
		if err := renderDocs(ctx, cmd.OutOrStdout(), path, opts); err != nil {
			p.Error("%s", liberrors.Format(err))
			return err
		}
		p.Success("Re-rendered %s", path)
		return nil
	})

	if err := fw.Start(ctx); err != nil {
		return err
	}
	p.Info("Watching %s for changes (Ctrl+C to stop)", path)

	<-ctx.Done()
	return nil
}

func renderDocs(ctx context.Context, stdout io.Writer, path string, opts *docsOptions) error {
	markdown, err := os.ReadFile(path)
	if err != nil {
		return liberrors.WrapIO(err, liberrors.ErrCodeInvalidPath, "cannot read "+path)
	}

	var buf bytes.Buffer
	switch strings.ToLower(opts.format) {
	case "terminal":
		rendered, err := docs.RenderTerminal(string(markdown), docs.TerminalOptions{Width: opts.width, Style: opts.style})
		if err != nil {
			return liberrors.WrapInternal(err, liberrors.ErrCodeInternalError, "rendering "+path)
		}
		buf.WriteString(rendered)
	default:
		if err := docs.RenderHTML(ctx, &buf, docs.Parse(string(markdown))); err != nil {
			return liberrors.WrapInternal(err, liberrors.ErrCodeInternalError, "rendering "+path)
		}
		buf.WriteString("\n")
	}

	if opts.out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(opts.out, buf.Bytes(), 0644); err != nil {
		return liberrors.WrapIO(err, liberrors.ErrCodeWriteFailed, fmt.Sprintf("cannot write %s", opts.out))
	}
	return nil
}
