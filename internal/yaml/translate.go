package yaml

import (
	"fmt"

	"github.com/specialistvlad/prismabundle/internal/config"
	"gopkg.in/yaml.v3"
)

// translateService converts the decoded file into the agnostic model.
func (l *Loader) translateService(f *serviceFile) (*config.Service, error) {
	name, err := serviceName(&f.Service)
	if err != nil {
		return nil, err
	}

	svc := &config.Service{
		Name:      name,
		UseDotenv: f.UseDotenv,
		Provider:  config.Provider{Name: f.Provider.Name, Runtime: f.Provider.Runtime},
		Package:   config.Package{Individually: f.Package.Individually},
		Custom:    f.Custom,
	}

	functions := &f.Functions
	if functions.Kind == 0 || (functions.Kind == yaml.ScalarNode && functions.Tag == "!!null") {
		return svc, nil
	}
	if functions.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: functions must be a mapping", functions.Line)
	}
	for i := 0; i+1 < len(functions.Content); i += 2 {
		key, value := functions.Content[i], functions.Content[i+1]

		var ff functionFile
		if err := value.Decode(&ff); err != nil {
			return nil, fmt.Errorf("function %q: %w", key.Value, err)
		}
		image, err := imageReference(&ff.Image)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", key.Value, err)
		}
		fn, err := config.NewFunction(key.Value, ff.Handler, image, ff.Runtime)
		if err != nil {
			return nil, err
		}
		svc.Functions = append(svc.Functions, fn)
	}
	return svc, nil
}

// serviceName accepts both `service: name` and `service: {name: name}`.
func serviceName(n *yaml.Node) (string, error) {
	switch n.Kind {
	case 0:
		return "", nil
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.MappingNode:
		var s struct {
			Name string `yaml:"name"`
		}
		if err := n.Decode(&s); err != nil {
			return "", fmt.Errorf("service: %w", err)
		}
		return s.Name, nil
	default:
		return "", fmt.Errorf("line %d: service must be a string or a mapping", n.Line)
	}
}

// imageReference accepts `image: ref` and `image: {uri: ref}` / `{name: ref}`.
// Any other mapping still makes the function image-based.
func imageReference(n *yaml.Node) (string, error) {
	switch n.Kind {
	case 0:
		return "", nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	case yaml.MappingNode:
		var img struct {
			URI  string `yaml:"uri"`
			Name string `yaml:"name"`
		}
		if err := n.Decode(&img); err != nil {
			return "", fmt.Errorf("image: %w", err)
		}
		switch {
		case img.URI != "":
			return img.URI, nil
		case img.Name != "":
			return img.Name, nil
		default:
			return config.UnnamedImage, nil
		}
	default:
		return "", fmt.Errorf("line %d: image must be a string or a mapping", n.Line)
	}
}
