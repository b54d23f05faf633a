package edition

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Capabilities is the capability set of the executing environment: a mapping
// from capability name to the concrete version present at runtime.
//
// Captured once at process start and passed read-only into selection.
type Capabilities map[string]*semver.Version

// ParseCapabilities builds a capability set from name -> version strings,
// e.g. {"node": "12.4.0"}.
func ParseCapabilities(raw map[string]string) (Capabilities, error) {
	caps := make(Capabilities, len(raw))
	for name, value := range raw {
		v, err := semver.NewVersion(value)
		if err != nil {
			return nil, fmt.Errorf("capability %s: invalid version %q: %w", name, value, err)
		}
		caps[name] = v
	}
	return caps, nil
}

// Detect captures the capabilities of the current process.
//
// The "go" capability carries the toolchain version the harness was built
// with. Development toolchains ("devel ...") have no parseable version and
// are omitted.
func Detect() Capabilities {
	caps := Capabilities{}
	if v, err := semver.NewVersion(strings.TrimPrefix(runtime.Version(), "go")); err == nil {
		caps["go"] = v
	}
	return caps
}

// satisfies reports whether every engine requirement is met by this
// capability set. A requirement whose capability is absent from the set is
// unsatisfied. An empty requirements map is always satisfied.
//
// The returned reason is empty on success and names the failing requirement
// otherwise.
func (c Capabilities) satisfies(engines map[string]string) (bool, string) {
	for name, rangeStr := range engines {
		constraint, err := semver.NewConstraint(rangeStr)
		if err != nil {
			return false, fmt.Sprintf("invalid range %s=%q", name, rangeStr)
		}
		have, ok := c[name]
		if !ok {
			return false, fmt.Sprintf("capability %s not present", name)
		}
		if !constraint.Check(have) {
			return false, fmt.Sprintf("%s %s does not satisfy %s", name, have, rangeStr)
		}
	}
	return true, ""
}
