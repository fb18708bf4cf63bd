package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/prismabundle/internal/ctxlog"
	"github.com/specialistvlad/prismabundle/internal/handlers"
)

// lifecycle is the ordered list of events fired during one packaging pass.
var lifecycle = []string{
	handlers.AfterCreateDeploymentArtifacts,
}

// Run executes one packaging pass by firing every lifecycle event in order.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	start := time.Now()

	if err := a.registry.Validate(ctx, lifecycle...); err != nil {
		return fmt.Errorf("invalid packaging setup: %w", err)
	}

	for _, event := range lifecycle {
		if err := a.registry.Hooks.Fire(ctx, event); err != nil {
			return fmt.Errorf("packaging failed: %w", err)
		}
	}

	a.logger.Info("Packaging pass finished.", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}
