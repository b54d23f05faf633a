// Package compare diffs a generated output tree against an expected fixture
// tree.
//
// Both trees are scanned into in-memory path -> content maps, the key sets
// are diffed for structural violations, and contents of shared paths are
// compared after running the configured normalization pipeline on both
// sides. Each comparison builds fresh trees and owns them exclusively, so
// concurrent comparisons are safe as long as they use distinct roots.
package compare

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// ScanTree recursively reads every regular file under root into a map keyed
// by slash-separated path relative to root. Directories contribute no
// entries. Content is canonicalized to Unicode NFC so that byte-level
// encoding differences do not masquerade as content mismatches.
//
// Any filesystem failure during the walk aborts the scan; partial trees are
// never returned.
func ScanTree(root string) (map[string]string, error) {
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = norm.NFC.String(string(content))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return tree, nil
}
