package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib-shared/lib-shared/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var (
		format string
		short  bool
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for lib-shared including the version number,
git commit, build time, Go version and target platform.

Examples:
  lib-shared version                # Detailed text output
  lib-shared version --short        # Version only
  lib-shared version --format json  # JSON output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "json":
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(info)
			case "text":
				if short {
					_, err := fmt.Fprintln(out, info.Short())
					return err
				}
				_, err := fmt.Fprintln(out, info.String())
				return err
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
			}
		},
	}

	versionCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&short, "short", false, "Show short version only")
	AddFlagValidation(versionCmd, "format", func(value string) error {
		return ValidateFormatWithSuggestion(value, []string{"text", "json"})
	})

	return versionCmd
}
