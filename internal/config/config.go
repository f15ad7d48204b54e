package config

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"

	"github.com/yyyoichi/emojicodec/internal/log"
)

type Config struct {
	Log    *log.Config   `yaml:"log"`
	Output *OutputConfig `yaml:"output"`
}

func (c *Config) Default() {
	if c.Log == nil {
		c.Log = &log.Config{}
	}
	c.Log.Default()
	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	c.Output.Default()
}

// OutputConfig controls where decoded files are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

func (c *OutputConfig) Default() {
	if c.Dir == "" {
		c.Dir = "."
	}
}

//

// Parse reads a YAML document and fills unset fields with defaults.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal config")
		}
	}
	c.Default()
	return c, nil
}

// Load reads the config file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %q", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %q", path)
	}
	return c, nil
}
