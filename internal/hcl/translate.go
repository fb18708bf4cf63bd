// This file contains the logic for translating HCL schema structs into the
// format-agnostic service model defined in the config package.

package hcl

import (
	"fmt"

	"github.com/specialistvlad/prismabundle/internal/config"
	"github.com/specialistvlad/prismabundle/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateService converts the decoded HCL file into the agnostic model.
func (l *Loader) translateService(s *schema.ServiceFile) (*config.Service, error) {
	svc := &config.Service{
		Name:      s.Service,
		UseDotenv: s.UseDotenv,
	}
	if s.Provider != nil {
		svc.Provider = config.Provider{Name: s.Provider.Name, Runtime: s.Provider.Runtime}
	}
	if s.Package != nil {
		svc.Package = config.Package{Individually: s.Package.Individually}
	}

	for _, f := range s.Functions {
		image, err := imageReference(f.Image)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", f.Name, err)
		}
		fn, err := config.NewFunction(f.Name, f.Handler, image, f.Runtime)
		if err != nil {
			return nil, err
		}
		svc.Functions = append(svc.Functions, fn)
	}

	if s.Custom != nil {
		native, err := ctyToNative(*s.Custom)
		if err != nil {
			return nil, fmt.Errorf("custom: %w", err)
		}
		if native != nil {
			m, ok := native.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("custom must be an object, got %s", s.Custom.Type().FriendlyName())
			}
			svc.Custom = m
		}
	}

	return svc, nil
}

// imageReference extracts the image reference from a string or an object
// with a `uri` or `name` attribute. An object without either yields
// config.UnnamedImage.
func imageReference(v *cty.Value) (string, error) {
	if v == nil || v.IsNull() {
		return "", nil
	}
	native, err := ctyToNative(*v)
	if err != nil {
		return "", fmt.Errorf("image: %w", err)
	}
	switch img := native.(type) {
	case string:
		return img, nil
	case map[string]any:
		for _, key := range []string{"uri", "name"} {
			if ref, ok := img[key].(string); ok && ref != "" {
				return ref, nil
			}
		}
		return config.UnnamedImage, nil
	default:
		return "", fmt.Errorf("image must be a string or an object, got %s", v.Type().FriendlyName())
	}
}

// ctyToNative recursively converts a cty.Value to its most natural Go
// counterpart so custom sections can be decoded like YAML maps.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			var i int
			if err := gocty.FromCtyValue(v, &i); err == nil {
				return i, nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", keyStr, err)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
