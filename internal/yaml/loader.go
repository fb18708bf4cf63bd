package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/prismabundle/internal/config"
	"github.com/specialistvlad/prismabundle/internal/ctxlog"
	"github.com/specialistvlad/prismabundle/internal/envvars"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML service loader.
func NewLoader() *Loader {
	return &Loader{}
}

// serviceFile mirrors the parts of a serverless.yml file this tool reads.
// Functions stay a node so declaration order survives decoding.
type serviceFile struct {
	Service   yaml.Node      `yaml:"service"`
	UseDotenv bool           `yaml:"useDotenv"`
	Provider  providerFile   `yaml:"provider"`
	Package   packageFile    `yaml:"package"`
	Functions yaml.Node      `yaml:"functions"`
	Custom    map[string]any `yaml:"custom"`
}

type providerFile struct {
	Name    string `yaml:"name"`
	Runtime string `yaml:"runtime"`
}

type packageFile struct {
	Individually bool `yaml:"individually"`
}

type functionFile struct {
	Handler string    `yaml:"handler"`
	Runtime string    `yaml:"runtime"`
	Image   yaml.Node `yaml:"image"`
}

type dotenvProbe struct {
	UseDotenv bool `yaml:"useDotenv"`
}

// Load parses the service file at path and translates it into the service
// model. ${env:NAME} references are resolved before decoding.
func (l *Loader) Load(ctx context.Context, path string) (*config.Service, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("service file %s is empty", path)
	}

	var probe dotenvProbe
	if err := root.Decode(&probe); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if probe.UseDotenv {
		if err := envvars.LoadDotenv(ctx, filepath.Dir(path)); err != nil {
			return nil, err
		}
	}

	if err := expandEnv(&root); err != nil {
		return nil, fmt.Errorf("failed to resolve variables in %s: %w", path, err)
	}

	var file serviceFile
	if err := root.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	svc, err := l.translateService(&file)
	if err != nil {
		return nil, fmt.Errorf("invalid service in %s: %w", path, err)
	}

	logger.Debug("YAML loading complete.", "service", svc.Name, "functions", len(svc.Functions))
	return svc, nil
}

// expandEnv resolves ${env:...} references in every string scalar. Plain
// scalars lose their string tag so "true" or "3" decode as their natural type.
func expandEnv(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		expanded, err := envvars.Expand(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		if expanded != n.Value {
			n.Value = expanded
			if n.Style == 0 {
				n.Tag = ""
			}
		}
		return nil
	}
	for _, child := range n.Content {
		if err := expandEnv(child); err != nil {
			return err
		}
	}
	return nil
}
