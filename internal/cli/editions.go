package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docpad/docpad-plugintester/internal/edition"
)

// EditionsOptions holds flags for the editions command.
type EditionsOptions struct {
	*RootOptions
	Edition      string
	Capabilities map[string]string
}

// editionReport is the JSON payload for a resolution.
type editionReport struct {
	Plugin     string `json:"plugin"`
	Edition    string `json:"edition"`
	EntryPath  string `json:"entry_path"`
	TestPath   string `json:"test_path,omitempty"`
	TesterPath string `json:"tester_path,omitempty"`
}

// NewEditionsCommand creates the editions command.
func NewEditionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "editions <plugin-dir>",
		Short: "Resolve which plugin edition would be loaded",
		Long: `Resolve which edition of a plugin package would be loaded, without
running any lifecycle action.

Prints the selected edition, its resolved entry point, and any test or
tester override files found next to it.

Examples:
  plugintester editions ./docpad-plugin-eco
  plugintester editions ./docpad-plugin-eco --edition=source
  plugintester editions ./docpad-plugin-eco --capability node=12.4.0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditions(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Edition, "edition", "", "force a specific edition directory")
	cmd.Flags().StringToStringVar(&opts.Capabilities, "capability", nil,
		"override runtime capabilities, e.g. --capability node=12.4.0")

	return cmd
}

func runEditions(opts *EditionsOptions, pluginDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(pluginDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("plugin directory not found: %s", pluginDir))
	}

	manifest, err := edition.LoadManifest(pluginDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load manifest", err)
	}

	caps := edition.Detect()
	if len(opts.Capabilities) > 0 {
		caps, err = edition.ParseCapabilities(opts.Capabilities)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid capabilities", err)
		}
	}

	sel, err := edition.Select(manifest, caps, opts.Edition)
	if err != nil {
		return WrapExitError(ExitCommandError, "edition resolution failed", err)
	}

	report := editionReport{
		Plugin:     manifest.Name,
		Edition:    sel.Directory,
		EntryPath:  sel.EntryPath,
		TestPath:   sel.TestPath,
		TesterPath: sel.TesterPath,
	}
	if opts.Format == "json" {
		return outputJSON(cmd.OutOrStdout(), report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "plugin:  %s\n", report.Plugin)
	fmt.Fprintf(out, "edition: %s\n", report.Edition)
	fmt.Fprintf(out, "entry:   %s\n", report.EntryPath)
	if report.TestPath != "" {
		fmt.Fprintf(out, "test:    %s\n", report.TestPath)
	}
	if report.TesterPath != "" {
		fmt.Fprintf(out, "tester:  %s\n", report.TesterPath)
	}
	return nil
}
