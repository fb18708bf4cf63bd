package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/prismabundle/internal/ctxlog"
)

// Validate checks that the registry holds a usable service and that every
// event has at least one hook.
func (r *Registry) Validate(ctx context.Context, events ...string) error {
	logger := ctxlog.FromContext(ctx)
	var result *multierror.Error

	if r.Service == nil {
		result = multierror.Append(result, fmt.Errorf("no service loaded"))
	} else if err := r.Service.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if r.ServicePath == "" {
		result = multierror.Append(result, fmt.Errorf("service path must not be empty"))
	}
	for _, event := range events {
		if len(r.Hooks.For(event)) == 0 {
			result = multierror.Append(result, fmt.Errorf("no hooks registered for %s", event))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	logger.Debug("Registry validation passed.", "events", events)
	return nil
}
