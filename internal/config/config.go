package config

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultLocation is where init writes, and push and info read, the config
// file when no --config flag is given.
const DefaultLocation = "./jiragen.json"

// ErrIncomplete is returned by Validate when a required value is missing.
var ErrIncomplete = errors.New("config is incomplete")

// Config holds what is needed to talk to Jira. JiraGen uses Basic
// Authentication, so both the user and the API key are required.
type Config struct {
	// URL is the base URL of the Jira server, e.g. "https://example.atlassian.net".
	URL string `json:"jira_url" yaml:"jira_url"`

	// User is the account name to log in with.
	User string `json:"jira_user" yaml:"jira_user"`

	// Key is the user's API key (or password on Jira Server).
	Key string `json:"jira_key" yaml:"jira_key"`
}

// fileConfig accepts the older "jira_password" spelling of the key.
type fileConfig struct {
	URL      string `json:"jira_url" yaml:"jira_url"`
	User     string `json:"jira_user" yaml:"jira_user"`
	Key      string `json:"jira_key" yaml:"jira_key"`
	Password string `json:"jira_password,omitempty" yaml:"jira_password,omitempty"`
}

// Format identifies the encoding of a config file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the location's extension. JSON (with
// comments allowed) is the default.
func DetectFormat(location string) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes config data in the given format.
func Parse(data []byte, format Format) (*Config, error) {
	var fc fileConfig

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}

	cfg := &Config{URL: fc.URL, User: fc.User, Key: fc.Key}
	if cfg.Key == "" {
		cfg.Key = fc.Password
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults normalizes values read from a file.
func applyDefaults(cfg *Config) {
	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	cfg.User = strings.TrimSpace(cfg.User)
}

// Validate reports every required value that is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.URL == "" {
		missing = append(missing, "jira_url")
	}

	if c.User == "" {
		missing = append(missing, "jira_user")
	}

	if c.Key == "" {
		missing = append(missing, "jira_key")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}

	return nil
}

// Marshal serializes a Config in the given format.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON:
		data, err := json.Marshal(cfg, jsontext.WithIndent("  "))
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
}
