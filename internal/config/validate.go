package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate reports every structural problem of the service at once.
func (s *Service) Validate() error {
	var result *multierror.Error

	if s.Name == "" {
		result = multierror.Append(result, fmt.Errorf("service name must not be empty"))
	}

	seen := make(map[string]struct{}, len(s.Functions))
	for i, fn := range s.Functions {
		name := fn.FunctionName()
		if name == "" {
			result = multierror.Append(result, fmt.Errorf("function #%d has an empty name", i))
			continue
		}
		if _, dup := seen[name]; dup {
			result = multierror.Append(result, fmt.Errorf("function %q is declared more than once", name))
		}
		seen[name] = struct{}{}

		if hf, ok := fn.(*HandlerFunction); ok {
			if strings.HasSuffix(hf.Handler, "/") || strings.HasPrefix(hf.Handler, "/") {
				result = multierror.Append(result, fmt.Errorf("function %q has a malformed handler %q", name, hf.Handler))
			}
		}
	}

	return result.ErrorOrNil()
}
