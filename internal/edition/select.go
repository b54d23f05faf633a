package edition

import (
	"fmt"

	"github.com/docpad/docpad-plugintester/internal/paths"
)

// DefaultExtensions is the extension preference order used when probing
// entry points and override files.
var DefaultExtensions = []string{"js", "coffee"}

// Override file basenames probed inside the selected edition's directory.
// Their presence never affects which edition is chosen, only what the
// harness loads afterwards.
const (
	testOverrideName   = "test"
	testerOverrideName = "tester"
)

// Selection is the outcome of edition resolution: the chosen edition plus
// the resolved on-disk paths the harness needs to load it.
type Selection struct {
	// Edition is the chosen variant. Nil when the manifest declares no
	// editions and the package's main entry was used directly.
	Edition *Edition

	// Directory is the chosen variant's directory name as declared
	// ("." for the implicit package-root edition).
	Directory string

	// EntryPath is the resolved absolute or package-relative path of the
	// entry point file.
	EntryPath string

	// TestPath is the resolved test-override file, if present.
	TestPath string

	// TesterPath is the resolved tester-override file, if present.
	TesterPath string
}

// Select picks exactly one edition of the package described by m, or fails.
//
// With no editions declared, the package is its own single implicit variant
// and the manifest's main entry is used. With an explicit hint, only the
// edition whose directory equals the hint is considered - there is no
// fall back to auto-detection. Otherwise candidates are evaluated in
// declaration order and the first one whose engine requirements are all
// satisfied by caps wins.
func Select(m *Manifest, caps Capabilities, hint string) (*Selection, error) {
	if len(m.Editions) == 0 {
		return selectImplicit(m)
	}

	if hint != "" {
		for i := range m.Editions {
			if m.Editions[i].Directory == hint {
				return resolveEdition(m, &m.Editions[i])
			}
		}
		tried := make([]Candidate, 0, len(m.Editions))
		for _, e := range m.Editions {
			tried = append(tried, Candidate{Directory: e.Directory, Reason: "directory does not match hint"})
		}
		return nil, &NoEditionError{Hint: hint, Tried: tried}
	}

	var tried []Candidate
	for i := range m.Editions {
		e := &m.Editions[i]
		ok, reason := caps.satisfies(e.Engines)
		if ok {
			return resolveEdition(m, e)
		}
		tried = append(tried, Candidate{Directory: e.Directory, Reason: reason})
	}
	return nil, &NoEditionError{Tried: tried}
}

// selectImplicit handles a manifest without an editions list: a single
// variant rooted at the package directory, entered through main.
func selectImplicit(m *Manifest) (*Selection, error) {
	if m.Main == "" {
		return nil, &ManifestError{Path: m.Path, Message: "no editions and no main entry"}
	}
	entry, err := paths.Resolve([]string{m.Dir, paths.StripExt(m.Main)}, DefaultExtensions)
	if err != nil {
		return nil, err
	}
	if entry == "" {
		return nil, &ManifestError{Path: m.Path, Message: fmt.Sprintf("main entry %q not found", m.Main)}
	}
	sel := &Selection{Directory: ".", EntryPath: entry}
	if err := resolveOverrides(sel, m.Dir); err != nil {
		return nil, err
	}
	return sel, nil
}

// resolveEdition derives the on-disk paths for a chosen edition.
func resolveEdition(m *Manifest, e *Edition) (*Selection, error) {
	if e.Directory == "" || e.Entry == "" {
		return nil, &ManifestError{
			Path:    m.Path,
			Message: fmt.Sprintf("edition %q lacks directory or entry", e.Directory),
		}
	}
	entry, err := paths.Resolve([]string{m.Dir, e.Directory, paths.StripExt(e.Entry)}, DefaultExtensions)
	if err != nil {
		return nil, err
	}
	if entry == "" {
		return nil, &ManifestError{
			Path:    m.Path,
			Message: fmt.Sprintf("entry %q not found in edition %q", e.Entry, e.Directory),
		}
	}
	sel := &Selection{Edition: e, Directory: e.Directory, EntryPath: entry}
	if err := resolveOverrides(sel, m.Dir, e.Directory); err != nil {
		return nil, err
	}
	return sel, nil
}

// resolveOverrides probes for the optional test and tester override files in
// the resolved edition directory.
func resolveOverrides(sel *Selection, dirSegments ...string) error {
	test, err := paths.Resolve(append(append([]string{}, dirSegments...), testOverrideName), DefaultExtensions)
	if err != nil {
		return err
	}
	tester, err := paths.Resolve(append(append([]string{}, dirSegments...), testerOverrideName), DefaultExtensions)
	if err != nil {
		return err
	}
	sel.TestPath = test
	sel.TesterPath = tester
	return nil
}
