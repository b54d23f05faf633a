package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/docpad/docpad-plugintester/internal/compare"
	"github.com/docpad/docpad-plugintester/internal/edition"
	"github.com/docpad/docpad-plugintester/internal/normalize"
)

// Host is the narrow surface of the content-generation framework the
// harness drives. The framework itself - plugin model, rendering pipeline,
// action system - lives behind this interface.
type Host interface {
	// RegisterPlugin makes the plugin implementation available to the
	// framework before any lifecycle action runs.
	RegisterPlugin(plugin any) error

	// RunAction triggers one named lifecycle action and blocks until the
	// framework signals completion.
	RunAction(ctx context.Context, action string) error

	// OutputDir is the framework's configured output directory. Consumed
	// as the actual side of the output comparison.
	OutputDir() string
}

// lifecycleActions is the fixed action sequence every run executes.
var lifecycleActions = []string{"clean", "install", "generate"}

// Options configures a single harness run.
type Options struct {
	// PackageDir is the plugin package root holding the manifest.
	PackageDir string

	// Plugin is the implementation handle registered with the host.
	Plugin any

	// EditionHint forces a specific edition directory; empty means
	// capability-based auto-detection.
	EditionHint string

	// Capabilities is the runtime capability set used for edition
	// selection. Nil falls back to edition.Detect().
	Capabilities edition.Capabilities

	// ExpectDir is the expected fixture tree. If it does not exist, the
	// output comparison is skipped.
	ExpectDir string

	// Normalize is the text normalization applied to both sides of the
	// output comparison.
	Normalize normalize.Config

	// Port is the port assigned to this run, if the plugin under test
	// serves anything. Informational; the harness only logs it.
	Port int

	// Logger receives structured run progress. Nil discards.
	Logger *slog.Logger
}

// Runner executes harness runs against a host framework instance.
type Runner struct {
	host   Host
	opts   Options
	logger *slog.Logger
}

// New creates a Runner for the given host.
func New(host Host, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{host: host, opts: opts, logger: logger}
}

// Run executes one full lifecycle: resolve, register, generate, compare.
//
// Lifecycle and selection failures abort the run and return an error.
// Comparison violations do not: they are recorded on the Result, one
// failure entry per violated invariant, and the Result reports Pass=false.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := NewResult()
	result.Started = time.Now()
	defer func() { result.Finished = time.Now() }()

	name, sel, err := r.resolve()
	if err != nil {
		return nil, err
	}
	result.Plugin = name
	if sel != nil {
		result.Edition = sel.Directory
		result.EntryPath = sel.EntryPath
	}

	if r.opts.Plugin != nil {
		if err := r.host.RegisterPlugin(r.opts.Plugin); err != nil {
			return nil, fmt.Errorf("register plugin: %w", err)
		}
	}

	if r.opts.Port != 0 {
		r.logger.Debug("port assigned", "port", r.opts.Port)
	}

	for _, action := range lifecycleActions {
		r.logger.Info("running action", "action", action)
		if err := r.host.RunAction(ctx, action); err != nil {
			return nil, fmt.Errorf("action %s: %w", action, err)
		}
	}

	comparison, err := compare.Compare(r.host.OutputDir(), r.opts.ExpectDir, r.opts.Normalize)
	if err != nil {
		return nil, err
	}
	result.Comparison = comparison
	if comparison.Skipped {
		r.logger.Info("comparison skipped", "expect", r.opts.ExpectDir)
		return result, nil
	}

	for _, path := range comparison.Missing {
		result.AddError(fmt.Sprintf("%s should have been generated", path))
	}
	for _, path := range comparison.Extra {
		result.AddError(fmt.Sprintf("%s should not have been generated", path))
	}
	for _, m := range comparison.Mismatches {
		result.AddError(fmt.Sprintf("%s content differs (%s)", m.Path, m.Normalization))
	}

	r.logger.Info("run finished",
		"pass", result.Pass,
		"missing", len(comparison.Missing),
		"extra", len(comparison.Extra),
		"mismatches", len(comparison.Mismatches),
	)
	return result, nil
}

// resolve loads the manifest and selects the edition. A run without a
// package dir (bare comparison) skips selection entirely.
func (r *Runner) resolve() (string, *edition.Selection, error) {
	if r.opts.PackageDir == "" {
		return "", nil, nil
	}
	manifest, err := edition.LoadManifest(r.opts.PackageDir)
	if err != nil {
		return "", nil, err
	}

	caps := r.opts.Capabilities
	if caps == nil {
		caps = edition.Detect()
	}
	sel, err := edition.Select(manifest, caps, r.opts.EditionHint)
	if err != nil {
		return manifest.Name, nil, err
	}
	r.logger.Info("edition selected",
		"plugin", manifest.Name,
		"edition", sel.Directory,
		"entry", sel.EntryPath,
	)
	return manifest.Name, sel, nil
}
