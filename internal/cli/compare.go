package cli

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/docpad/docpad-plugintester/internal/compare"
	"github.com/docpad/docpad-plugintester/internal/normalize"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Mode  string
	Strip string
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <actual-dir> <expected-dir>",
		Short: "Diff two output trees under a normalization mode",
		Long: `Compare a generated output tree against an expected tree without
running any plugin.

A missing expected directory is a skip, not a failure.

Exit codes:
  0 - Trees match (or comparison skipped)
  1 - Violations found
  2 - Command error

Examples:
  plugintester compare ./test/out ./test/out-expected
  plugintester compare ./test/out ./test/out-expected --mode=trim
  plugintester compare ./out ./expected --strip '<updated>[^<]*</updated>'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "none", "whitespace normalization: none, remove, or trim")
	cmd.Flags().StringVar(&opts.Strip, "strip", "", "regexp removed from both sides before comparing")

	return cmd
}

func runCompare(opts *CompareOptions, actualDir, expectedDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(actualDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("actual directory not found: %s", actualDir))
	}

	mode, err := normalize.ParseMode(opts.Mode)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid mode", err)
	}
	cfg := normalize.Config{Mode: mode}
	if opts.Strip != "" {
		re, err := regexp.Compile(opts.Strip)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid strip pattern", err)
		}
		cfg.Strip = re
	}

	result, err := compare.Compare(actualDir, expectedDir, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "comparison failed", err)
	}

	if opts.Format == "json" {
		if err := outputJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), result.Render())
	}

	if !result.Clean() {
		violations := len(result.Missing) + len(result.Extra) + len(result.Mismatches)
		return NewExitError(ExitFailure, fmt.Sprintf("%d violation(s)", violations))
	}
	return nil
}
