package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docpad/docpad-plugintester/internal/normalize"
	"github.com/docpad/docpad-plugintester/internal/testutil"
)

func TestLoadConfig_MissingFileIsZeroConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFilename))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfig_Full(t *testing.T) {
	dir := testutil.TempTree(t, map[string]string{
		ConfigFilename: `
edition: out
mode: trim
strip: '<!-- .* -->'
expect: test/out-expected
port_base: 9005
capabilities:
  node: 12.4.0
`,
	})

	cfg, err := LoadConfig(filepath.Join(dir, ConfigFilename))
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Edition)
	assert.Equal(t, "trim", cfg.Mode)
	assert.Equal(t, "test/out-expected", cfg.Expect)
	assert.Equal(t, 9005, cfg.PortBase)
	assert.Equal(t, map[string]string{"node": "12.4.0"}, cfg.Capabilities)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	dir := testutil.TempTree(t, map[string]string{ConfigFilename: "mode: [unclosed"})

	_, err := LoadConfig(filepath.Join(dir, ConfigFilename))
	require.Error(t, err)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := &Config{Mode: "remove", Strip: `\d+`}
	nc, err := cfg.NormalizeConfig()
	require.NoError(t, err)
	assert.Equal(t, normalize.ModeRemove, nc.Mode)
	require.NotNil(t, nc.Strip)
	assert.Equal(t, `\d+`, nc.Strip.String())
}

func TestNormalizeConfig_Defaults(t *testing.T) {
	nc, err := (&Config{}).NormalizeConfig()
	require.NoError(t, err)
	assert.Equal(t, normalize.ModeNone, nc.Mode)
	assert.Nil(t, nc.Strip)
}

func TestNormalizeConfig_Invalid(t *testing.T) {
	_, err := (&Config{Mode: "squash"}).NormalizeConfig()
	require.Error(t, err)

	_, err = (&Config{Strip: "("}).NormalizeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid strip pattern")
}
