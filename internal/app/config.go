package app

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ServicePath string // directory of the service
	ConfigFile  string // explicit service definition, relative to ServicePath
	PackageDir  string // artifact directory override

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and makes its paths absolute.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ServicePath == "" {
		return nil, errors.New("ServicePath is a required configuration field and cannot be empty")
	}

	abs, err := filepath.Abs(cfg.ServicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service path: %w", err)
	}
	cfg.ServicePath = abs

	if cfg.ConfigFile != "" && !filepath.IsAbs(cfg.ConfigFile) {
		cfg.ConfigFile = filepath.Join(cfg.ServicePath, cfg.ConfigFile)
	}
	if cfg.PackageDir != "" && !filepath.IsAbs(cfg.PackageDir) {
		cfg.PackageDir = filepath.Join(cfg.ServicePath, cfg.PackageDir)
	}

	return &cfg, nil
}
