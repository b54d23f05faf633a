package edition

import (
	"errors"
	"fmt"
	"strings"
)

// ManifestError indicates the package manifest carries no usable entry or
// edition information. It aborts a run before any filesystem probing.
type ManifestError struct {
	// Path is the manifest file location, for diagnostics.
	Path string

	// Message describes what was missing or malformed.
	Message string

	// Err is the underlying parse/validation error, if any.
	Err error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed manifest %s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("malformed manifest %s: %s", e.Path, e.Message)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// Candidate records one edition that was evaluated and rejected during
// selection, with the reason it was passed over.
type Candidate struct {
	Directory string
	Reason    string
}

// NoEditionError indicates that no declared edition satisfies the runtime
// capabilities, or that an explicit edition hint matched nothing. It carries
// the list of attempted candidates for diagnosis.
type NoEditionError struct {
	// Hint is the explicit edition name that was requested, if any.
	Hint string

	// Tried lists the candidates that were evaluated, in manifest order.
	Tried []Candidate
}

func (e *NoEditionError) Error() string {
	var b strings.Builder
	if e.Hint != "" {
		fmt.Fprintf(&b, "no edition named %q", e.Hint)
	} else {
		b.WriteString("no edition satisfies the runtime capabilities")
	}
	if len(e.Tried) > 0 {
		b.WriteString(" (tried:")
		for _, c := range e.Tried {
			fmt.Fprintf(&b, " %s[%s]", c.Directory, c.Reason)
		}
		b.WriteString(")")
	}
	return b.String()
}

// IsManifestError reports whether err is a ManifestError.
// Uses errors.As to handle wrapped errors.
func IsManifestError(err error) bool {
	var me *ManifestError
	return errors.As(err, &me)
}

// IsNoEditionError reports whether err is a NoEditionError.
// Uses errors.As to handle wrapped errors.
func IsNoEditionError(err error) bool {
	var ne *NoEditionError
	return errors.As(err, &ne)
}
