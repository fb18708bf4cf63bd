package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/prismabundle/internal/config"
	"github.com/specialistvlad/prismabundle/internal/ctxlog"
	"github.com/specialistvlad/prismabundle/internal/hcl"
	"github.com/specialistvlad/prismabundle/internal/yaml"
)

// serviceFileNames are tried in order when no explicit file is configured.
var serviceFileNames = []string{
	"serverless.yml",
	"serverless.yaml",
	"serverless.json",
	"serverless.hcl",
}

// findServiceFile returns the explicit file if set, otherwise the first
// existing default service file in servicePath.
func findServiceFile(servicePath, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("service file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, name := range serviceFileNames {
		candidate := filepath.Join(servicePath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no service file found in %s (looked for %s)", servicePath, strings.Join(serviceFileNames, ", "))
}

// loaderFor picks the config.Loader matching the file extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml", ".json":
		return yaml.NewLoader(), nil
	case ".hcl":
		return hcl.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported service file format %q", filepath.Ext(path))
	}
}

// loadService discovers, loads and validates the service definition.
func loadService(ctx context.Context, cfg *Config) (*config.Service, error) {
	logger := ctxlog.FromContext(ctx)

	path, err := findServiceFile(cfg.ServicePath, cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	loader, err := loaderFor(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loading service definition.", "path", path, "loader", fmt.Sprintf("%T", loader))

	svc, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := svc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service definition %s: %w", path, err)
	}
	logger.Info("Service definition loaded.", "service", svc.Name, "functions", len(svc.Functions), "individually", svc.Package.Individually)
	return svc, nil
}
