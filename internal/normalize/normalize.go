// Package normalize implements the text transform pipeline applied to both
// sides of an output comparison.
//
// A comparison is only meaningful if both sides receive byte-identical
// treatment, so the pipeline is pure configuration: a Config value describes
// the transforms and Apply executes them deterministically. All transforms
// are projections - applying one twice yields the same result as once.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects the whitespace transform.
type Mode string

const (
	// ModeNone leaves the text untouched.
	ModeNone Mode = "none"

	// ModeRemove deletes every run of whitespace, newlines included.
	// Line structure is erased entirely; this is the coarsest mode.
	ModeRemove Mode = "remove"

	// ModeTrim strips each line, drops blank lines, and trims the whole
	// result. Indentation differences vanish but distinct lines survive.
	ModeTrim Mode = "trim"
)

// ParseMode converts a string flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNone, ModeRemove, ModeTrim:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid normalization mode %q: must be one of none, remove, trim", s)
	}
}

var (
	// Go's \s is ASCII-only; \v, NEL, and the Unicode separator categories
	// must be listed explicitly to cover everything unicode.IsSpace accepts.
	whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)
	newlineRun    = regexp.MustCompile(`\n{2,}`)
)

// Config describes the active transforms. Exactly one Mode is active; the
// optional Strip pattern runs after the mode transform and removes every
// match from the text.
type Config struct {
	Mode  Mode
	Strip *regexp.Regexp
}

// Apply runs the transform pipeline on text: mode transform first, then the
// strip pattern if configured.
func (c Config) Apply(text string) string {
	out := text
	switch c.Mode {
	case ModeRemove:
		out = whitespaceRun.ReplaceAllString(out, "")
	case ModeTrim:
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSpace(line)
		}
		out = strings.Join(lines, "\n")
		out = newlineRun.ReplaceAllString(out, "\n")
		out = strings.TrimSpace(out)
	}
	if c.Strip != nil {
		out = c.Strip.ReplaceAllString(out, "")
	}
	return out
}

// Label describes the active transforms for diagnostic display, e.g. in a
// content-mismatch record.
func (c Config) Label() string {
	mode := c.Mode
	if mode == "" {
		mode = ModeNone
	}
	label := "whitespace=" + string(mode)
	if c.Strip != nil {
		label += " strip=" + c.Strip.String()
	}
	return label
}
