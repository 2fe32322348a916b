package config

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
)

// filePerm keeps the API key readable by the owner only.
const filePerm = 0o600

// Load reads and parses the config file at location.
func Load(ctx context.Context, fs afs.Service, location string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", location, err)
	}

	cfg, err := Parse(data, DetectFormat(location))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}

	return cfg, nil
}

// WriteFile writes cfg to location in the format its extension implies.
func WriteFile(ctx context.Context, fs afs.Service, location string, cfg *Config) error {
	data, err := Marshal(cfg, DetectFormat(location))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fs.Upload(ctx, location, filePerm, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", location, err)
	}

	return nil
}
