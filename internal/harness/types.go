package harness

import (
	"time"

	"github.com/docpad/docpad-plugintester/internal/compare"
)

// Result is the outcome of one harness run.
type Result struct {
	// Plugin is the plugin package name from its manifest.
	Plugin string `json:"plugin,omitempty"`

	// Edition is the directory of the selected edition ("." when the
	// package has a single implicit variant).
	Edition string `json:"edition,omitempty"`

	// EntryPath is the resolved entry point of the selected edition.
	EntryPath string `json:"entry_path,omitempty"`

	// Pass indicates overall run success: the lifecycle completed and the
	// output comparison found no violations.
	Pass bool `json:"pass"`

	// Errors contains one entry per violated invariant.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Comparison is the full output diff, nil if the run aborted before
	// the comparison phase.
	Comparison *compare.Result `json:"comparison,omitempty"`

	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

// NewResult creates a new passing result.
// Used as the starting point for run execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a violation and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
