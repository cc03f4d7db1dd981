package config

// Config represents the complete application configuration of the
// status tools.
type Config struct {
	// IndexURL locates the buildfarm configuration index.  When
	// ConfigRepo is set a relative path is taken inside the
	// checkout.
	IndexURL string `yaml:"index_url"`

	// StatusURL is the location template of the per variant
	// status documents.  {distro} and {variant} are substituted.
	StatusURL string `yaml:"status_url"`

	// Distributions restricts the snapshot to the named
	// distributions.  Empty means all of them.
	Distributions []string `yaml:"distributions"`

	ConfigRepo *RepoConfig `yaml:"config_repo"`

	Bind     string `yaml:"bind"`
	Store    string `yaml:"store"`
	LogLevel string `yaml:"log_level"`
}

// RepoConfig points at a git repository holding the buildfarm
// configuration.
type RepoConfig struct {
	URL  string `yaml:"url"`
	Path string `yaml:"path"`
	Rev  string `yaml:"rev"`
}
