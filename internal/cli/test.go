package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docpad/docpad-plugintester/internal/edition"
	"github.com/docpad/docpad-plugintester/internal/harness"
	"github.com/docpad/docpad-plugintester/internal/store"
)

// Default directory layout inside a plugin package.
const (
	defaultOutDir    = "test/out"
	defaultExpectDir = "test/out-expected"
)

// defaultPortBase seeds the port allocator when the config does not.
const defaultPortBase = 8500

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Edition  string
	Expect   string
	Out      string
	Mode         string
	Strip        string
	Database     string
	Capabilities map[string]string

	// Host allows overriding the framework instance (for testing).
	// If nil, a local host rooted at the plugin's out directory is used.
	Host harness.Host
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <plugin-dir>",
		Short: "Run the harness lifecycle against a plugin",
		Long: `Run the full harness lifecycle against a plugin package.

Resolves the plugin's edition from its manifest, drives the host framework
through clean, install, and generate, and compares the generated output
against the expected fixture tree.

Per-plugin defaults come from an optional plugintester.yml in the plugin
directory; flags take precedence.

Exit codes:
  0 - Run passed
  1 - Output violations found
  2 - Command error (bad manifest, no valid edition, invalid paths)

Examples:
  plugintester test ./docpad-plugin-eco
  plugintester test ./docpad-plugin-eco --edition=out --mode=trim
  plugintester test ./docpad-plugin-eco --db ./runs.db --debug`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Edition, "edition", "", "force a specific edition directory")
	cmd.Flags().StringVar(&opts.Expect, "expect", "", "expected output directory (default <plugin-dir>/"+defaultExpectDir+")")
	cmd.Flags().StringVar(&opts.Out, "out", "", "actual output directory (default <plugin-dir>/"+defaultOutDir+")")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "whitespace normalization: none, remove, or trim")
	cmd.Flags().StringVar(&opts.Strip, "strip", "", "regexp removed from both sides before comparing")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in a SQLite journal at this path")
	cmd.Flags().StringToStringVar(&opts.Capabilities, "capability", nil,
		"override runtime capabilities, e.g. --capability node=12.4.0")

	return cmd
}

func runTest(opts *TestOptions, pluginDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(pluginDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("plugin directory not found: %s", pluginDir))
	}
	logger := newLogger(opts.Debug)

	cfg, err := harness.LoadConfig(filepath.Join(pluginDir, harness.ConfigFilename))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load harness config", err)
	}
	applyFlagOverrides(cfg, opts)

	normCfg, err := cfg.NormalizeConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid normalization config", err)
	}

	// Flag beats config file beats process detection.
	capSource := cfg.Capabilities
	if len(opts.Capabilities) > 0 {
		capSource = opts.Capabilities
	}
	caps := edition.Detect()
	if len(capSource) > 0 {
		caps, err = edition.ParseCapabilities(capSource)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid capabilities", err)
		}
	}

	expectDir := cfg.Expect
	if expectDir == "" {
		expectDir = defaultExpectDir
	}
	if !filepath.IsAbs(expectDir) {
		expectDir = filepath.Join(pluginDir, expectDir)
	}

	outDir := opts.Out
	if outDir == "" {
		outDir = filepath.Join(pluginDir, defaultOutDir)
	}

	portBase := cfg.PortBase
	if portBase == 0 {
		portBase = defaultPortBase
	}
	ports := harness.NewPortAllocator(portBase)

	host := opts.Host
	if host == nil {
		host = newLocalHost(outDir, logger)
	}

	runner := harness.New(host, harness.Options{
		PackageDir:   pluginDir,
		EditionHint:  cfg.Edition,
		Capabilities: caps,
		ExpectDir:    expectDir,
		Normalize:    normCfg,
		Port:         ports.Next(),
		Logger:       logger,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := runner.Run(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "harness run failed", err)
	}

	if opts.Database != "" {
		if err := journalRun(ctx, opts.Database, result); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
	}

	if opts.Format == "json" {
		if err := outputJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		renderTestResult(cmd, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("%d violation(s)", len(result.Errors)))
	}
	return nil
}

// applyFlagOverrides lets command-line flags win over the config file.
func applyFlagOverrides(cfg *harness.Config, opts *TestOptions) {
	if opts.Edition != "" {
		cfg.Edition = opts.Edition
	}
	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}
	if opts.Strip != "" {
		cfg.Strip = opts.Strip
	}
	if opts.Expect != "" {
		cfg.Expect = opts.Expect
	}
}

func renderTestResult(cmd *cobra.Command, result *harness.Result) {
	out := cmd.OutOrStdout()
	if result.Plugin != "" {
		fmt.Fprintf(out, "plugin: %s (edition %s)\n", result.Plugin, result.Edition)
	}
	if result.Comparison != nil {
		fmt.Fprint(out, result.Comparison.Render())
	}
	if result.Pass {
		fmt.Fprintln(out, "PASS")
	} else {
		fmt.Fprintf(out, "FAIL: %d violation(s)\n", len(result.Errors))
	}
}

// journalRun records the result in the SQLite run journal.
func journalRun(ctx context.Context, path string, result *harness.Result) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	_, err = st.RecordRun(ctx, result)
	return err
}
