package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// NewConfig returns a config object with default structures
// initialized.  The config can be loaded from other sources to
// override the defaults.
func NewConfig() *Config {
	return &Config{
		IndexURL:  "file://ros_buildfarm_config/index.yaml",
		StatusURL: "file://status/{distro}_{variant}.yaml",
		Bind:      ":8080",
		Store:     "memory",
		LogLevel:  "INFO",
	}
}

// LoadFromFile does as the name suggests, and loads the config from a
// file
func (c *Config) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	return dec.Decode(c)
}

// StatusURLFor expands the status document location of a variant.
func (c *Config) StatusURLFor(distro, variant string) string {
	r := strings.NewReplacer("{distro}", distro, "{variant}", variant)
	return r.Replace(c.StatusURL)
}

// ResolvedIndexURL returns the index location, anchored in the
// configuration checkout when one is configured and the index is
// given as a plain path.
func (c *Config) ResolvedIndexURL() string {
	if c.ConfigRepo == nil || strings.Contains(c.IndexURL, "://") {
		return c.IndexURL
	}
	return "file://" + filepath.Join(c.ConfigRepo.Path, c.IndexURL)
}
