// Package paths provides filesystem path probing for the plugin tester.
//
// The resolver answers one question: given a base path assembled from
// segments and a preference-ordered list of extensions, which file actually
// exists on disk? It performs existence checks only and never reads content.
package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Resolve joins segments into a candidate path and probes for an existing
// regular file or directory.
//
// Probe order:
//  1. The joined path exactly as given.
//  2. The joined path with "." + ext appended, for each extension in order.
//
// The first existing candidate wins. If no candidate exists, Resolve returns
// ("", nil) - absence is not an error. If any segment is empty, resolution
// short-circuits to not-found rather than probing a nonsensical path.
//
// Stat failures other than fs.ErrNotExist propagate to the caller.
func Resolve(segments []string, extensions []string) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}
	for _, seg := range segments {
		if seg == "" {
			return "", nil
		}
	}

	base := filepath.Join(segments...)

	candidates := make([]string, 0, len(extensions)+1)
	candidates = append(candidates, base)
	for _, ext := range extensions {
		candidates = append(candidates, base+"."+ext)
	}

	for _, candidate := range candidates {
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("probe %s: %w", candidate, err)
		}
	}
	return "", nil
}

// StripExt removes the final extension from a path, if any.
//
// Declared entry points may carry an extension ("index.js") or not ("index");
// selection strips it so Resolve can re-derive the real file from the
// extension preference list.
func StripExt(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path
	}
	return path[:len(path)-len(ext)]
}
