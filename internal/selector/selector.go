// Package selector decides which functions of a service must receive the
// embedded schema and engine binaries.
package selector

import (
	"strings"

	"github.com/specialistvlad/prismabundle/internal/config"
)

// nodeRuntimeToken identifies the Node.js runtime family.
const nodeRuntimeToken = "node"

// Select returns the names of the functions to augment, in declaration
// order. When functions are not packaged individually the single
// config.ServiceUnit identifier is returned instead.
func Select(svc *config.Service, settings config.Settings) []string {
	if !svc.Package.Individually {
		return []string{config.ServiceUnit}
	}

	names := make([]string, 0, len(svc.Functions))
	for _, fn := range svc.Functions {
		if settings.IsIgnored(fn.FunctionName()) {
			continue
		}
		// Images are built outside of the packaging step.
		if _, isImage := fn.(*config.ImageFunction); isImage {
			continue
		}
		if !IsNodeRuntime(EffectiveRuntime(fn, svc)) {
			continue
		}
		names = append(names, fn.FunctionName())
	}
	return names
}

// EffectiveRuntime returns the function's runtime, falling back to the
// provider runtime and then to config.DefaultRuntime.
func EffectiveRuntime(fn config.Function, svc *config.Service) string {
	if rt := fn.DeclaredRuntime(); rt != "" {
		return rt
	}
	if svc.Provider.Runtime != "" {
		return svc.Provider.Runtime
	}
	return config.DefaultRuntime
}

// IsNodeRuntime reports whether runtime belongs to the Node.js family.
func IsNodeRuntime(runtime string) bool {
	return strings.Contains(strings.ToLower(runtime), nodeRuntimeToken)
}
