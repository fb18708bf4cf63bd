package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
)

// Settings are the plugin options read from the service's `custom` section.
// They are resolved once per packaging pass.
type Settings struct {
	// PrismaPath is the directory holding the schema and node_modules.
	// Defaults to the service path.
	PrismaPath string
	// IgnoreFunctions lists functions that never receive the schema.
	// Defaults to empty.
	IgnoreFunctions []string
	// OutputDir is the directory containing `.serverless`. Defaults to the
	// service path.
	OutputDir string
	// ReplaceExisting drops entries with the same name before appending.
	// Defaults to false, so repeated runs add duplicate entries.
	ReplaceExisting bool
}

// IsIgnored reports whether name is in the ignore list.
func (s Settings) IsIgnored(name string) bool {
	for _, ignored := range s.IgnoreFunctions {
		if ignored == name {
			return true
		}
	}
	return false
}

type prismaSection struct {
	PrismaPath      string   `mapstructure:"prismaPath"`
	IgnoreFunctions []string `mapstructure:"ignoreFunctions"`
	ReplaceExisting bool     `mapstructure:"replaceExisting"`
}

type esbuildSection struct {
	OutputDir string `mapstructure:"outputDir"`
}

type customSections struct {
	Prisma  prismaSection  `mapstructure:"prisma"`
	Esbuild esbuildSection `mapstructure:"esbuild"`
}

// ResolveSettings decodes the plugin options from svc.Custom and applies
// defaults. Relative paths are resolved against servicePath.
func ResolveSettings(svc *Service, servicePath string) (Settings, error) {
	var sections customSections
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &sections,
		TagName: "mapstructure",
	})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to build settings decoder: %w", err)
	}

	if err := decoder.Decode(svc.Custom); err != nil {
		var result *multierror.Error
		var mErr *mapstructure.Error
		if errors.As(err, &mErr) {
			for _, msg := range mErr.Errors {
				result = multierror.Append(result, errors.New(msg))
			}
		} else {
			result = multierror.Append(result, err)
		}
		return Settings{}, fmt.Errorf("invalid custom settings: %w", result.ErrorOrNil())
	}

	settings := Settings{
		PrismaPath:      resolvePath(servicePath, sections.Prisma.PrismaPath),
		IgnoreFunctions: sections.Prisma.IgnoreFunctions,
		OutputDir:       resolvePath(servicePath, sections.Esbuild.OutputDir),
		ReplaceExisting: sections.Prisma.ReplaceExisting,
	}
	if settings.IgnoreFunctions == nil {
		settings.IgnoreFunctions = []string{}
	}
	return settings, nil
}

func resolvePath(base, p string) string {
	if p == "" {
		return base
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
