package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// JIRASYNC_JIRA_API_TOKEN for jira.api_token.
const EnvPrefix = "JIRASYNC"

// Config is the full jirasync configuration
type Config struct {
	Addr     string        `mapstructure:"addr"`
	Prefixes []string      `mapstructure:"prefixes"`
	Jira     JiraConfig    `mapstructure:"jira"`
	Include  IncludeConfig `mapstructure:"include"`
	GitHub   GitHubConfig  `mapstructure:"github"`
	GitLab   GitLabConfig  `mapstructure:"gitlab"`
	Slack    SlackConfig   `mapstructure:"slack"`
}

// JiraConfig holds the tracker credentials. Blank values are reported as
// warnings when the sync is configured, not rejected here.
type JiraConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	APIToken string `mapstructure:"api_token"`
}

// IncludeConfig selects which issue fields become labels
type IncludeConfig struct {
	Project    bool `mapstructure:"project"`
	Components bool `mapstructure:"components"`
	Labels     bool `mapstructure:"labels"`
}

type GitHubConfig struct {
	Token         string `mapstructure:"token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type GitLabConfig struct {
	Token         string `mapstructure:"token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	BaseURL       string `mapstructure:"base_url"`
}

// SlackConfig enables posting run warnings to a channel when both fields are set
type SlackConfig struct {
	Token   string `mapstructure:"token"`
	Channel string `mapstructure:"channel"`
}

func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.Channel != ""
}

var defaults = map[string]any{
	"addr":                  ":8080",
	"prefixes":              []string{},
	"jira.url":              "",
	"jira.username":         "",
	"jira.api_token":        "",
	"include.project":       true,
	"include.components":    true,
	"include.labels":        false,
	"github.token":          "",
	"github.webhook_secret": "",
	"gitlab.token":          "",
	"gitlab.webhook_secret": "",
	"gitlab.base_url":       "https://gitlab.com",
	"slack.token":           "",
	"slack.channel":         "",
}

// SetDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load loads configuration from v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.GitLab.BaseURL == "" {
		cfg.GitLab.BaseURL = "https://gitlab.com"
	}
	cfg.GitLab.BaseURL = strings.TrimSuffix(cfg.GitLab.BaseURL, "/")

	prefixes := cfg.Prefixes[:0]
	for _, p := range cfg.Prefixes {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	cfg.Prefixes = prefixes
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Prefixes) == 0 {
		return fmt.Errorf("at least one issue key prefix is required")
	}
	if c.GitHub.Token == "" && c.GitLab.Token == "" {
		return fmt.Errorf("a GitHub or GitLab token is required")
	}
	if !c.Include.Project && !c.Include.Components && !c.Include.Labels {
		return fmt.Errorf("include must enable at least one of project, components or labels")
	}
	return nil
}
