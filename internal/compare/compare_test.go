package compare

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docpad/docpad-plugintester/internal/normalize"
	"github.com/docpad/docpad-plugintester/internal/testutil"
)

func TestScanTree(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"index.html":        "<html/>",
		"posts/first.html":  "one",
		"posts/second.html": "two",
		"assets/css/m.css":  "body{}",
	})

	tree, err := ScanTree(root)
	require.NoError(t, err)
	assert.Len(t, tree, 4)
	assert.Equal(t, "<html/>", tree["index.html"])
	assert.Equal(t, "one", tree["posts/first.html"])
	// Directories are not entries.
	assert.NotContains(t, tree, "posts")
	assert.NotContains(t, tree, "assets/css")
}

func TestScanTree_MissingRoot(t *testing.T) {
	_, err := ScanTree(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestScanTree_NFCCanonicalization(t *testing.T) {
	// "é" as combining sequence (NFD) vs precomposed (NFC).
	root := testutil.TempTree(t, map[string]string{"a.txt": "café"})

	tree, err := ScanTree(root)
	require.NoError(t, err)
	assert.Equal(t, "café", tree["a.txt"])
}

func TestCompare_MissingExpectedRootSkips(t *testing.T) {
	actual := testutil.TempTree(t, map[string]string{"a.txt": "x"})

	result, err := Compare(actual, filepath.Join(t.TempDir(), "no-fixture"), normalize.Config{})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.True(t, result.Clean())
}

func TestCompare_StructuralAndContentViolations(t *testing.T) {
	actual := testutil.TempTree(t, map[string]string{
		"a.txt": "Hello\n",
		"b.txt": "World",
	})
	expected := testutil.TempTree(t, map[string]string{
		"a.txt": "Hello",
		"c.txt": "World",
	})

	result, err := Compare(actual, expected, normalize.Config{Mode: normalize.ModeTrim})
	require.NoError(t, err)
	assert.Equal(t, []string{"c.txt"}, result.Missing)
	assert.Equal(t, []string{"b.txt"}, result.Extra)
	// a.txt matches after trim: both sides normalize to "Hello".
	assert.Empty(t, result.Mismatches)
	assert.False(t, result.Clean())
}

func TestCompare_ContentMismatchCarriesNormalizedSides(t *testing.T) {
	actual := testutil.TempTree(t, map[string]string{"page.html": "  <p>actual</p>  "})
	expected := testutil.TempTree(t, map[string]string{"page.html": "  <p>expected</p>  "})

	result, err := Compare(actual, expected, normalize.Config{Mode: normalize.ModeTrim})
	require.NoError(t, err)
	require.Len(t, result.Mismatches, 1)
	m := result.Mismatches[0]
	assert.Equal(t, "page.html", m.Path)
	assert.Equal(t, "<p>actual</p>", m.Actual)
	assert.Equal(t, "<p>expected</p>", m.Expected)
	assert.Equal(t, "whitespace=trim", m.Normalization)
}

func TestCompare_AllViolationsReportedTogether(t *testing.T) {
	actual := testutil.TempTree(t, map[string]string{
		"only-actual.txt": "x",
		"shared.txt":      "one",
		"also.txt":        "same",
	})
	expected := testutil.TempTree(t, map[string]string{
		"only-expected.txt": "y",
		"shared.txt":        "two",
		"also.txt":          "same",
	})

	result, err := Compare(actual, expected, normalize.Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"only-expected.txt"}, result.Missing)
	assert.Equal(t, []string{"only-actual.txt"}, result.Extra)
	require.Len(t, result.Mismatches, 1)
	assert.Equal(t, "shared.txt", result.Mismatches[0].Path)
}

func TestCompare_RemoveModeIgnoresAllWhitespace(t *testing.T) {
	actual := testutil.TempTree(t, map[string]string{
		"out.html": "<ul>\n  <li>a</li>\n</ul>\n",
	})
	expected := testutil.TempTree(t, map[string]string{
		"out.html": "<ul><li>a</li></ul>",
	})

	result, err := Compare(actual, expected, normalize.Config{Mode: normalize.ModeRemove})
	require.NoError(t, err)
	assert.True(t, result.Clean())
}

func TestCompare_StripPatternAppliedToBothSides(t *testing.T) {
	actual := testutil.TempTree(t, map[string]string{
		"feed.xml": "<updated>2026-08-31T10:00:00Z</updated>",
	})
	expected := testutil.TempTree(t, map[string]string{
		"feed.xml": "<updated>2020-01-01T00:00:00Z</updated>",
	})
	cfg := normalize.Config{
		Mode:  normalize.ModeNone,
		Strip: regexp.MustCompile(`<updated>[^<]*</updated>`),
	}

	result, err := Compare(actual, expected, cfg)
	require.NoError(t, err)
	assert.True(t, result.Clean())
}

func TestCompare_IdenticalTrees(t *testing.T) {
	files := map[string]string{
		"index.html":       "<html/>",
		"posts/first.html": "one",
	}
	actual := testutil.TempTree(t, files)
	expected := testutil.TempTree(t, files)

	result, err := Compare(actual, expected, normalize.Config{})
	require.NoError(t, err)
	assert.True(t, result.Clean())
	assert.False(t, result.Skipped)
}

func TestCompare_EmptyTrees(t *testing.T) {
	result, err := Compare(t.TempDir(), t.TempDir(), normalize.Config{})
	require.NoError(t, err)
	assert.True(t, result.Clean())
}
