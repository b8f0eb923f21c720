// Package config holds the CLI's local settings, stored as YAML in
// ~/.tokgate/cli.yaml.
package config
