package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"
)

// Config is the TOML file layout. Command-line flags override file values.
type Config struct {
	Project     string `toml:"project"`
	Credentials string `toml:"credentials"`
	Listen      string `toml:"listen"`
	Metrics     string `toml:"metrics"`
}

func loadConfig(c *cli.Context) (*Config, error) {
	cfg := &Config{}
	if path := c.String(configFlag.Name); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config %q: %w", path, err)
		}
	}
	if c.IsSet(projectFlag.Name) || cfg.Project == "" {
		cfg.Project = c.String(projectFlag.Name)
	}
	if c.IsSet(credentialsFlag.Name) || cfg.Credentials == "" {
		cfg.Credentials = c.String(credentialsFlag.Name)
	}
	if c.IsSet(metricsFlag.Name) {
		cfg.Metrics = c.String(metricsFlag.Name)
	}
	return cfg, nil
}
