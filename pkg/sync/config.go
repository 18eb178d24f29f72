package sync

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config holds the remote sync configuration for the GitHub provider. It is
// stored both in the config file (under the "github" key) and in the store's
// github-config record; the record wins when present so settings saved at
// runtime survive without editing the config file.
type Config struct {
	Token          string `mapstructure:"token" json:"token,omitempty"`
	Owner          string `mapstructure:"owner" json:"owner"`
	Repo           string `mapstructure:"repo" json:"repo"`
	Branch         string `mapstructure:"branch" json:"branch"`
	CommitTemplate string `mapstructure:"commit_template" json:"commitTemplate"`
	AutoCommit     bool   `mapstructure:"auto_commit" json:"autoCommit"`
}

// DefaultCommitTemplate is the message template applied when none is
// configured. {filename} is replaced by the document's derived filename.
const DefaultCommitTemplate = "Update documentation: {filename}"

// DecodeConfig builds a Config from the raw map viper exposes for the
// "github" config key.
func DecodeConfig(raw map[string]any) (*Config, error) {
	var cfg Config
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode github config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Branch == "" {
		c.Branch = "main"
	}
	if c.CommitTemplate == "" {
		c.CommitTemplate = DefaultCommitTemplate
	}
}

// Enabled reports whether the configuration names a target repository.
func (c *Config) Enabled() bool {
	return c != nil && c.Owner != "" && c.Repo != ""
}
