package harness

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/docpad/docpad-plugintester/internal/normalize"
)

// ConfigFilename is the optional per-plugin harness configuration file,
// looked up in the plugin package root.
const ConfigFilename = "plugintester.yml"

// Config is the on-disk harness configuration. Every field is optional;
// flags given on the command line take precedence over the file.
type Config struct {
	// Edition forces a specific edition directory.
	Edition string `yaml:"edition,omitempty"`

	// Mode selects the whitespace normalization: none, remove, or trim.
	Mode string `yaml:"mode,omitempty"`

	// Strip is a regular expression removed from both sides of the
	// output comparison after the mode transform.
	Strip string `yaml:"strip,omitempty"`

	// Expect is the expected-output fixture directory, relative to the
	// plugin package root.
	Expect string `yaml:"expect,omitempty"`

	// PortBase seeds the port allocator for this suite.
	PortBase int `yaml:"port_base,omitempty"`

	// Capabilities overrides runtime capability detection,
	// capability name -> concrete version.
	Capabilities map[string]string `yaml:"capabilities,omitempty"`
}

// LoadConfig reads the harness config at path. A missing file is not an
// error; it yields the zero config.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// NormalizeConfig builds the normalization pipeline described by the config.
func (c *Config) NormalizeConfig() (normalize.Config, error) {
	out := normalize.Config{Mode: normalize.ModeNone}
	if c.Mode != "" {
		mode, err := normalize.ParseMode(c.Mode)
		if err != nil {
			return normalize.Config{}, err
		}
		out.Mode = mode
	}
	if c.Strip != "" {
		re, err := regexp.Compile(c.Strip)
		if err != nil {
			return normalize.Config{}, fmt.Errorf("invalid strip pattern: %w", err)
		}
		out.Strip = re
	}
	return out, nil
}
