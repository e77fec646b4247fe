package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lib-shared/lib-shared/internal/console"
	"github.com/lib-shared/lib-shared/internal/registry"
	"github.com/lib-shared/lib-shared/internal/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listFormats = []string{"table", "json", "yaml"}

func newListCmd(a *app) *cobra.Command {
	var format string

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the components available in the registry",
		Long: `Fetch the registry index and print every component with its description.

Examples:
  lib-shared list                  # Table output
  lib-shared list --format json    # JSON, for scripts
  lib-shared list -f yaml          # YAML`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, a, strings.ToLower(format))
		},
	}

	listCmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table|json|yaml)")
	AddFlagValidation(listCmd, "format", func(value string) error {
		return ValidateFormatWithSuggestion(value, listFormats)
	})

	return listCmd
}

func runList(cmd *cobra.Command, a *app, format string) error {
	if err := a.load(cmd); err != nil {
		return err
	}

	ctx := cmd.Context()
	op := a.logger.StartOperation("fetch_index")
	index, err := a.registryClient().FetchIndex(ctx)
	if err != nil {
		op.EndWithError(ctx, err)
		return err
	}
	op.End(ctx)

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return outputListJSON(out, index)
	case "yaml":
		return outputListYAML(out, index)
	default:
		return outputListTable(out, index, a.validator().IsValid)
	}
}

func outputListTable(out io.Writer, index *registry.Index, installable func(string) bool) error {
	if len(index.Items) == 0 {
		console.NewPrinter(out).Warn("No components found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\t")
	for _, item := range index.Items {
		name := item.Name
		if !installable(name) {
			name += " (unavailable)"
		}
		desc := item.Description
		if desc == "" {
			desc = item.Title
		}
		fmt.Fprintf(w, "%s\t%s\t\n", name, validation.SanitizeInput(desc))
	}
	return w.Flush()
}

func outputListJSON(out io.Writer, index *registry.Index) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(index.Items)
}

func outputListYAML(out io.Writer, index *registry.Index) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(index.Items); err != nil {
		return err
	}
	return encoder.Close()
}
