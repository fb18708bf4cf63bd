package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/prismabundle/internal/config"
	"github.com/specialistvlad/prismabundle/internal/ctxlog"
	"github.com/specialistvlad/prismabundle/internal/envvars"
	"github.com/specialistvlad/prismabundle/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL service loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the serverless.hcl file at path and translates it into the
// service model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Service, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	// use_dotenv must be known before env() calls are evaluated.
	var probe schema.DotenvProbe
	if diags := gohcl.DecodeBody(file.Body, nil, &probe); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	if probe.UseDotenv {
		if err := envvars.LoadDotenv(ctx, filepath.Dir(path)); err != nil {
			return nil, err
		}
	}

	var root schema.ServiceFile
	if diags := gohcl.DecodeBody(file.Body, newEvalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	svc, err := l.translateService(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid service in %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "service", svc.Name, "functions", len(svc.Functions))
	return svc, nil
}
