package edition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docpad/docpad-plugintester/internal/testutil"
)

func TestLoadManifest_Full(t *testing.T) {
	manifest := `{
		"name": "docpad-plugin-example",
		"version": "2.1.0",
		"main": "index.js",
		"editions": [
			{
				"description": "esnext source",
				"directory": "source",
				"entry": "index.js",
				"engines": {"node": ">=14"}
			},
			{
				"description": "compiled fallback",
				"directory": "out",
				"entry": "index.js",
				"engines": {}
			}
		]
	}`
	dir := testutil.TempTree(t, map[string]string{ManifestFilename: manifest})

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "docpad-plugin-example", m.Name)
	assert.Equal(t, "2.1.0", m.Version)
	assert.Equal(t, "index.js", m.Main)
	require.Len(t, m.Editions, 2)
	assert.Equal(t, "source", m.Editions[0].Directory)
	assert.Equal(t, map[string]string{"node": ">=14"}, m.Editions[0].Engines)
	assert.Empty(t, m.Editions[1].Engines)
	assert.Equal(t, dir, m.Dir)
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(t.TempDir())
	require.Error(t, err)
	assert.False(t, IsManifestError(err))
}

func TestLoadManifest_InvalidJSON(t *testing.T) {
	dir := testutil.TempTree(t, map[string]string{ManifestFilename: `{"name": `})

	_, err := LoadManifest(dir)
	require.Error(t, err)
	assert.True(t, IsManifestError(err))
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLoadManifest_SchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"editions not an array", `{"name":"x","editions":{}}`},
		{"edition not an object", `{"name":"x","editions":["source"]}`},
		{"engines value not a string", `{"name":"x","editions":[{"directory":"d","entry":"e","engines":{"node":10}}]}`},
		{"main not a string", `{"name":"x","main":42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.TempTree(t, map[string]string{ManifestFilename: tt.manifest})
			_, err := LoadManifest(dir)
			require.Error(t, err)
			assert.True(t, IsManifestError(err))
		})
	}
}

func TestParseCapabilities(t *testing.T) {
	caps, err := ParseCapabilities(map[string]string{"node": "12.4.0", "npm": "6.9.0"})
	require.NoError(t, err)
	assert.Equal(t, "12.4.0", caps["node"].String())

	_, err = ParseCapabilities(map[string]string{"node": "not-a-version"})
	require.Error(t, err)
}

func TestDetect_ReportsGoCapability(t *testing.T) {
	caps := Detect()
	// Release toolchains always parse; devel builds legitimately omit it.
	if v, ok := caps["go"]; ok {
		assert.Positive(t, v.Major())
	}
}

func TestSatisfies(t *testing.T) {
	caps, err := ParseCapabilities(map[string]string{"node": "10.2.1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		engines map[string]string
		want    bool
	}{
		{"empty always satisfied", map[string]string{}, true},
		{"nil always satisfied", nil, true},
		{"satisfied range", map[string]string{"node": ">=10"}, true},
		{"unsatisfied range", map[string]string{"node": ">=14"}, false},
		{"absent capability", map[string]string{"browsers": ">=1"}, false},
		{"invalid range", map[string]string{"node": "not-a-range"}, false},
		{"one of two fails", map[string]string{"node": ">=8", "npm": ">=1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := caps.satisfies(tt.engines)
			assert.Equal(t, tt.want, ok)
			if !ok {
				assert.NotEmpty(t, reason)
			}
		})
	}
}
