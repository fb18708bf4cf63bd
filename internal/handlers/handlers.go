package handlers

import (
	"context"
	"fmt"

	"github.com/specialistvlad/prismabundle/internal/ctxlog"
)

// AfterCreateDeploymentArtifacts fires once the packaging step has written
// every zip artifact.
const AfterCreateDeploymentArtifacts = "after:package:createDeploymentArtifacts"

// HookFunc is a Go function bound to a lifecycle event.
type HookFunc func(ctx context.Context) error

// RegisteredHook is a named hook attached to an event.
type RegisteredHook struct {
	Name string
	Fn   HookFunc
}

// Hooks holds all the registered lifecycle hooks, in registration order per event.
type Hooks struct {
	byEvent map[string][]*RegisteredHook
	names   map[string]struct{}
}

// New creates and initializes a new Hooks registry.
func New() *Hooks {
	return &Hooks{
		byEvent: make(map[string][]*RegisteredHook),
		names:   make(map[string]struct{}),
	}
}

// Register attaches fn to event under a unique name.
func (h *Hooks) Register(event, name string, fn HookFunc) {
	if _, exists := h.names[name]; exists {
		panic(fmt.Sprintf("hook with name '%s' already registered", name))
	}
	h.names[name] = struct{}{}
	h.byEvent[event] = append(h.byEvent[event], &RegisteredHook{Name: name, Fn: fn})
}

// For returns the hooks registered for event.
func (h *Hooks) For(event string) []*RegisteredHook {
	return h.byEvent[event]
}

// Fire runs every hook of event sequentially and stops at the first error.
func (h *Hooks) Fire(ctx context.Context, event string) error {
	logger := ctxlog.FromContext(ctx)
	hooks := h.byEvent[event]
	logger.Debug("Firing lifecycle event.", "event", event, "hooks", len(hooks))

	for _, hook := range hooks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("event %s interrupted before hook %s: %w", event, hook.Name, err)
		}
		logger.Debug("Running hook.", "event", event, "hook", hook.Name)
		if err := hook.Fn(ctx); err != nil {
			return fmt.Errorf("hook %s failed on %s: %w", hook.Name, event, err)
		}
	}
	return nil
}
