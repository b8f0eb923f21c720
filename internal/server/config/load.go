package config

import (
	"github.com/yndnr/tokgate/internal/infra/confloader"
)

// Load builds the configuration from defaults, the file at path (optional),
// the environment and overrides, then verifies it. The returned loader can
// reload the same sources later.
func Load(path string, overrides map[string]any) (*ServerConfig, *confloader.Loader, error) {
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)

	cfg := Default()
	if err := loader.Load(cfg); err != nil {
		return nil, nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

// Reload re-reads every source through loader and verifies the result.
func Reload(loader *confloader.Loader) (*ServerConfig, error) {
	cfg := Default()
	if err := loader.Reload(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
