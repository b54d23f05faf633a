package cli

import (
	"context"
	"log/slog"
)

// localHost is the fallback harness.Host used when no framework instance is
// supplied: it drives no real framework and treats the plugin's prepared out
// directory as the generated output. Lifecycle actions complete immediately.
//
// Deployments embedding a real host framework construct their own adapter
// and pass it through TestOptions.Host.
type localHost struct {
	outputDir string
	logger    *slog.Logger
}

func newLocalHost(outputDir string, logger *slog.Logger) *localHost {
	return &localHost{outputDir: outputDir, logger: logger}
}

func (h *localHost) RegisterPlugin(plugin any) error {
	return nil
}

func (h *localHost) RunAction(_ context.Context, action string) error {
	h.logger.Debug("local host action", "action", action)
	return nil
}

func (h *localHost) OutputDir() string {
	return h.outputDir
}
