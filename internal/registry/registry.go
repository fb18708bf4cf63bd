package registry

import (
	"github.com/specialistvlad/prismabundle/internal/config"
	"github.com/specialistvlad/prismabundle/internal/handlers"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the hooks and the shared, read-only state of a single
// packaging pass.
type Registry struct {
	Hooks       *handlers.Hooks
	Service     *config.Service
	ServicePath string
	// PackageDir overrides the artifact directory; empty means the
	// default below the esbuild output directory.
	PackageDir string
}

// New creates and initializes a new Registry instance.
func New(svc *config.Service, servicePath, packageDir string) *Registry {
	return &Registry{
		Hooks:       handlers.New(),
		Service:     svc,
		ServicePath: servicePath,
		PackageDir:  packageDir,
	}
}

// RegisterModules lets every module attach its hooks, in order.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, mod := range modules {
		mod.Register(r)
	}
}
