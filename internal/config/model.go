package config

import (
	"errors"
	"fmt"
	"strings"
)

// ServiceUnit is the identifier of the single shared artifact produced when
// functions are not packaged individually.
const ServiceUnit = "service"

// DefaultRuntime is assumed when neither a function nor the provider
// declares a runtime.
const DefaultRuntime = "nodejs"

// ErrUnknownFunction is returned when a function name is not declared in the service.
var ErrUnknownFunction = errors.New("unknown function")

// Service is the unified, format-agnostic representation of a serverless
// service definition.
type Service struct {
	Name      string
	Provider  Provider
	Package   Package
	Functions []Function // declaration order
	Custom    map[string]any
	UseDotenv bool
}

// Provider holds the service-wide provider defaults.
type Provider struct {
	Name    string
	Runtime string
}

// Package holds the service-wide packaging options.
type Package struct {
	Individually bool
}

// Function is a single deployable unit. It is either a *HandlerFunction or
// an *ImageFunction; the variant is decided once by NewFunction.
type Function interface {
	FunctionName() string
	DeclaredRuntime() string
	isFunction()
}

// HandlerFunction is a function whose entry point is a source file inside
// the packaged project.
type HandlerFunction struct {
	Name    string
	Handler string
	Runtime string
}

// ImageFunction is a function deployed from a pre-built container image.
type ImageFunction struct {
	Name    string
	Image   string
	Runtime string
}

func (f *HandlerFunction) FunctionName() string    { return f.Name }
func (f *HandlerFunction) DeclaredRuntime() string { return f.Runtime }
func (*HandlerFunction) isFunction()               {}

func (f *ImageFunction) FunctionName() string    { return f.Name }
func (f *ImageFunction) DeclaredRuntime() string { return f.Runtime }
func (*ImageFunction) isFunction()               {}

// SourceDir returns the archive-internal directory of the handler file.
// Handlers always use forward slashes; "src/a/index.handler" yields "src/a"
// and "index.handler" yields "".
func (f *HandlerFunction) SourceDir() string {
	i := strings.LastIndex(f.Handler, "/")
	if i < 0 {
		return ""
	}
	return f.Handler[:i]
}

// UnnamedImage stands in for an image definition that names no reference,
// such as a mapping without `uri` or `name`. It still marks the function as
// image-based.
const UnnamedImage = "<unnamed image>"

// NewFunction decides the function variant from raw definition fields. A
// non-empty image always wins over a handler.
func NewFunction(name, handler, image, runtime string) (Function, error) {
	switch {
	case image != "":
		return &ImageFunction{Name: name, Image: image, Runtime: runtime}, nil
	case handler != "":
		return &HandlerFunction{Name: name, Handler: handler, Runtime: runtime}, nil
	default:
		return nil, fmt.Errorf("function %q must declare either a handler or an image", name)
	}
}

// Function looks up a function definition by name.
func (s *Service) Function(name string) (Function, bool) {
	for _, fn := range s.Functions {
		if fn.FunctionName() == name {
			return fn, true
		}
	}
	return nil, false
}

// FunctionNames returns all function names in declaration order.
func (s *Service) FunctionNames() []string {
	names := make([]string, 0, len(s.Functions))
	for _, fn := range s.Functions {
		names = append(names, fn.FunctionName())
	}
	return names
}

// FirstHandlerFunction returns the first handler-based function in
// declaration order, or nil if the service only deploys images.
func (s *Service) FirstHandlerFunction() *HandlerFunction {
	for _, fn := range s.Functions {
		if hf, ok := fn.(*HandlerFunction); ok {
			return hf
		}
	}
	return nil
}
