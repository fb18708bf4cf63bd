// Package augment embeds the Prisma schema and engine binaries into the
// zip artifact of a single function.
package augment

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/specialistvlad/prismabundle/internal/archive"
	"github.com/specialistvlad/prismabundle/internal/config"
	"github.com/specialistvlad/prismabundle/internal/ctxlog"
	"github.com/specialistvlad/prismabundle/internal/fsutil"
	"github.com/specialistvlad/prismabundle/internal/prismaschema"
)

// PackageDirName is the directory, relative to the output directory, in
// which the packaging step writes the zip artifacts.
const PackageDirName = ".serverless"

// Augmenter appends the schema and engines to already built artifacts.
type Augmenter struct {
	service    *config.Service
	settings   config.Settings
	packageDir string
}

// New creates an Augmenter. An empty packageDir selects
// <settings.OutputDir>/.serverless.
func New(svc *config.Service, settings config.Settings, packageDir string) *Augmenter {
	if packageDir == "" {
		packageDir = filepath.Join(settings.OutputDir, PackageDirName)
	}
	return &Augmenter{
		service:    svc,
		settings:   settings,
		packageDir: packageDir,
	}
}

// ArchivePath returns the artifact location for the named function.
func (a *Augmenter) ArchivePath(functionName string) string {
	return filepath.Join(a.packageDir, functionName+".zip")
}

// Augment appends schemaPath and every engine binary found below the
// Prisma path to the artifact of functionName. Image functions are skipped
// silently.
func (a *Augmenter) Augment(ctx context.Context, functionName, schemaPath string) error {
	ctx = ctxlog.With(ctx, "function", functionName)
	logger := ctxlog.FromContext(ctx)

	fn, err := a.resolve(functionName)
	if err != nil {
		return err
	}
	if fn == nil {
		logger.Debug("Function has no handler, skipping.")
		return nil
	}

	prefix := fn.SourceDir()
	logger.Debug("Destination prefix computed.", "prefix", prefix, "handler", fn.Handler)

	engines, err := fsutil.FindEngineBinaries(a.settings.PrismaPath)
	if err != nil {
		return fmt.Errorf("failed to locate engine binaries: %w", err)
	}
	if len(engines) == 0 {
		logger.Warn("No Prisma engine binaries found.", "root", a.settings.PrismaPath)
	}

	entries := make([]archive.Entry, 0, len(engines)+1)
	entries = append(entries, archive.Entry{
		Name:       entryName(prefix, prismaschema.FileName),
		SourcePath: schemaPath,
	})
	for _, engine := range engines {
		entries = append(entries, archive.Entry{
			Name:       entryName(prefix, filepath.Base(engine)),
			SourcePath: engine,
		})
	}

	zipPath := a.ArchivePath(functionName)
	if _, err := archive.Append(ctx, zipPath, entries, archive.Options{ReplaceExisting: a.settings.ReplaceExisting}); err != nil {
		return fmt.Errorf("failed to augment %s: %w", functionName, err)
	}
	logger.Info("Embedded Prisma schema and engines.", "archive", zipPath, "engines", len(engines))
	return nil
}

// resolve maps functionName to a handler function. It returns nil for image
// functions and for a service unit without any handler function.
func (a *Augmenter) resolve(functionName string) (*config.HandlerFunction, error) {
	fn, ok := a.service.Function(functionName)
	if !ok {
		if functionName == config.ServiceUnit {
			return a.service.FirstHandlerFunction(), nil
		}
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownFunction, functionName)
	}
	switch f := fn.(type) {
	case *config.HandlerFunction:
		return f, nil
	case *config.ImageFunction:
		return nil, nil
	default:
		return nil, fmt.Errorf("function %q has unsupported definition %T", functionName, fn)
	}
}

func entryName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
