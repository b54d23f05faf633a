package compare

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/docpad/docpad-plugintester/internal/normalize"
)

// Mismatch records a content difference for a path present in both trees.
// Both sides are the post-normalization strings, paired with a label of the
// normalizations that were applied, for diagnostic display.
type Mismatch struct {
	Path          string `json:"path"`
	Actual        string `json:"actual"`
	Expected      string `json:"expected"`
	Normalization string `json:"normalization"`
}

// Result is the structural diff of an actual output tree against an
// expected fixture tree. All violation categories are reported together;
// a comparison never stops at the first difference.
type Result struct {
	// Skipped is true when the expected root does not exist. Absence of a
	// fixture means no fixture-based check was requested, not a failure.
	Skipped bool `json:"skipped,omitempty"`

	// Missing lists paths present in expected but absent from actual:
	// files that should have been generated.
	Missing []string `json:"missing,omitempty"`

	// Extra lists paths present in actual but absent from expected:
	// files that should not have been generated.
	Extra []string `json:"extra,omitempty"`

	// Mismatches lists per-path content differences.
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// Clean reports whether the comparison found no violations.
// A skipped comparison is clean.
func (r *Result) Clean() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.Mismatches) == 0
}

// Compare scans both roots and diffs them under the given normalization
// config.
//
// A non-existent expectedRoot short-circuits to a skipped result. Every
// other filesystem failure aborts the comparison and propagates.
func Compare(actualRoot, expectedRoot string, cfg normalize.Config) (*Result, error) {
	if _, err := os.Stat(expectedRoot); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Result{Skipped: true}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", expectedRoot, err)
	}

	actual, err := ScanTree(actualRoot)
	if err != nil {
		return nil, err
	}
	expected, err := ScanTree(expectedRoot)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for path := range expected {
		if _, ok := actual[path]; !ok {
			result.Missing = append(result.Missing, path)
		}
	}
	for path := range actual {
		if _, ok := expected[path]; !ok {
			result.Extra = append(result.Extra, path)
		}
	}

	for path, actualContent := range actual {
		expectedContent, ok := expected[path]
		if !ok {
			continue
		}
		a := cfg.Apply(actualContent)
		e := cfg.Apply(expectedContent)
		if a != e {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Path:          path,
				Actual:        a,
				Expected:      e,
				Normalization: cfg.Label(),
			})
		}
	}

	// Map iteration order is random; sort for deterministic output.
	sort.Strings(result.Missing)
	sort.Strings(result.Extra)
	sort.Slice(result.Mismatches, func(i, j int) bool {
		return result.Mismatches[i].Path < result.Mismatches[j].Path
	})
	return result, nil
}

// Render formats the result as a human-readable report.
func (r *Result) Render() string {
	var b strings.Builder
	switch {
	case r.Skipped:
		b.WriteString("comparison skipped: no expected output directory\n")
		return b.String()
	case r.Clean():
		b.WriteString("output matches expected\n")
		return b.String()
	}
	for _, path := range r.Missing {
		fmt.Fprintf(&b, "missing: %s (should have been generated)\n", path)
	}
	for _, path := range r.Extra {
		fmt.Fprintf(&b, "extra: %s (should not have been generated)\n", path)
	}
	for _, m := range r.Mismatches {
		fmt.Fprintf(&b, "mismatch: %s (%s)\n", m.Path, m.Normalization)
		fmt.Fprintf(&b, "  actual:   %q\n", m.Actual)
		fmt.Fprintf(&b, "  expected: %q\n", m.Expected)
	}
	return b.String()
}
