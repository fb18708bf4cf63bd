package prisma

import (
	"context"
	"fmt"

	"github.com/specialistvlad/prismabundle/internal/augment"
	"github.com/specialistvlad/prismabundle/internal/config"
	"github.com/specialistvlad/prismabundle/internal/ctxlog"
	"github.com/specialistvlad/prismabundle/internal/handlers"
	"github.com/specialistvlad/prismabundle/internal/prismaschema"
	"github.com/specialistvlad/prismabundle/internal/registry"
	"github.com/specialistvlad/prismabundle/internal/selector"
)

// HookName identifies the embed hook in the registry.
const HookName = "prisma.embed"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register attaches the embed hook to the artifact finalization event.
func (m *Module) Register(r *registry.Registry) {
	r.Hooks.Register(handlers.AfterCreateDeploymentArtifacts, HookName, func(ctx context.Context) error {
		return Embed(ctx, r)
	})
}

// Embed copies the Prisma schema and engines into the artifact of every
// selected function. The first failure aborts the pass; archives already
// rewritten stay rewritten.
func Embed(ctx context.Context, r *registry.Registry) error {
	logger := ctxlog.FromContext(ctx)

	settings, err := config.ResolveSettings(r.Service, r.ServicePath)
	if err != nil {
		return err
	}
	logger.Debug("Prisma settings resolved.",
		"prisma_path", settings.PrismaPath,
		"output_dir", settings.OutputDir,
		"ignore", settings.IgnoreFunctions,
		"replace_existing", settings.ReplaceExisting,
	)

	names := selector.Select(r.Service, settings)
	logger.Info("Functions selected for Prisma embedding.", "count", len(names), "functions", names)

	schemaPath, err := prismaschema.Resolve(ctx, settings.PrismaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve Prisma schema: %w", err)
	}

	aug := augment.New(r.Service, settings, r.PackageDir)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("packaging interrupted before %s: %w", name, err)
		}
		if err := aug.Augment(ctx, name, schemaPath); err != nil {
			return err
		}
	}
	return nil
}
