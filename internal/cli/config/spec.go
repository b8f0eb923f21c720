package config

import "time"

// Defaults.
const (
	DefaultServer  = "http://localhost:5080"
	DefaultOutput  = "table"
	DefaultTimeout = 30 * time.Second
)

// CLIConfig is the configuration for tokgate-cli.
type CLIConfig struct {
	Server  string        `yaml:"server"`
	Output  string        `yaml:"output"` // table, json, yaml
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:  DefaultServer,
		Output:  DefaultOutput,
		Timeout: DefaultTimeout,
	}
}
