package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rjoshi/studyops/internal/profile"
)

// Config holds everything the CLI steps need. Values come from STUDYOPS_*
// environment variables, overridable per-field by flags.
type Config struct {
	// VaultDir is the Obsidian-style notes directory the create step scans.
	VaultDir string `mapstructure:"vault_dir"`
	// DeckDir is where exported Anki decks are written. Defaults to VaultDir.
	DeckDir string `mapstructure:"deck_dir"`
	// WorkspaceDir holds the lab projects the share step publishes.
	WorkspaceDir string `mapstructure:"workspace_dir"`

	GitHubToken  string `mapstructure:"github_token"`
	CommitAuthor string `mapstructure:"commit_author"`
	PrivateRepos bool   `mapstructure:"private_repos"`

	WakaTimeAPIKey string `mapstructure:"wakatime_api_key"`

	// Username keys the persisted learner profile.
	Username string `mapstructure:"username"`
	// ProfileDir overrides the default XDG profile directory.
	ProfileDir string `mapstructure:"profile_dir"`

	LogLevel string `mapstructure:"log_level"`
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STUDYOPS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("vault_dir", "")
	v.SetDefault("deck_dir", "")
	v.SetDefault("workspace_dir", "")
	v.SetDefault("github_token", "")
	v.SetDefault("commit_author", "")
	v.SetDefault("private_repos", false)
	v.SetDefault("wakatime_api_key", "")
	v.SetDefault("username", "")
	v.SetDefault("profile_dir", "")
	v.SetDefault("log_level", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DeckDir == "" {
		cfg.DeckDir = cfg.VaultDir
	}
	return &cfg, nil
}

// ResolveProfileDir returns the configured profile directory or the XDG
// default.
func (c *Config) ResolveProfileDir() (string, error) {
	if c.ProfileDir != "" {
		return c.ProfileDir, nil
	}
	return profile.DefaultDir()
}

// ValidateCreate checks the create step's requirements.
func (c *Config) ValidateCreate() error {
	if c.VaultDir == "" {
		return fmt.Errorf("vault directory not set: export STUDYOPS_VAULT_DIR or pass --vault")
	}
	return nil
}

// ValidateShare checks the share step's requirements.
func (c *Config) ValidateShare() error {
	if c.WorkspaceDir == "" {
		return fmt.Errorf("workspace directory not set: export STUDYOPS_WORKSPACE_DIR or pass --workspace")
	}
	if c.GitHubToken == "" {
		return fmt.Errorf("github token not set: export STUDYOPS_GITHUB_TOKEN (needs repo scope)")
	}
	return nil
}

// ValidateReflect checks the reflect step's requirements.
func (c *Config) ValidateReflect() error {
	if c.Username == "" {
		return fmt.Errorf("username not set: export STUDYOPS_USERNAME or pass --username")
	}
	return nil
}

// ValidateStats checks the stats command's requirements.
func (c *Config) ValidateStats() error {
	if c.WakaTimeAPIKey == "" {
		return fmt.Errorf("wakatime api key not set: export STUDYOPS_WAKATIME_API_KEY")
	}
	return nil
}
