package descriptor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor is the declarative build record read once per invocation.
type Descriptor struct {
	// Path is the file the descriptor was read from, empty for in-memory descriptors.
	Path string `yaml:"-"`

	Plugins      []PluginReference  `yaml:"plugins,omitempty" validate:"omitempty,dive"`
	Repositories []RepositorySource `yaml:"repositories,omitempty" validate:"omitempty,dive"`
	Tasks        []TaskSpec         `yaml:"tasks,omitempty" validate:"omitempty,dive"`
}

// PluginReference names a versioned plugin made available to the project.
type PluginReference struct {
	ID      string `yaml:"id" validate:"required,plugin_id"`
	Version string `yaml:"version,omitempty" validate:"omitempty,plugin_version"`
	// Apply is false for plugins that are only put on the classpath and
	// activated later by subprojects.
	Apply bool `yaml:"apply"`
	// Builtin plugins ship with the build engine and need no version.
	Builtin bool `yaml:"builtin,omitempty"`
}

// UnmarshalYAML defaults Apply to true when the key is omitted.
func (p *PluginReference) UnmarshalYAML(value *yaml.Node) error {
	type rawPlugin PluginReference
	var temp rawPlugin
	if err := checkKnownKeys(value, "plugin", "id", "version", "apply", "builtin"); err != nil {
		return err
	}
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*p = PluginReference(temp)
	if !hasYAMLKey(value, "apply") {
		p.Apply = true
	}
	return nil
}

// RepositorySource is a named location consulted, in declaration order, when
// resolving plugins and their dependencies.
type RepositorySource struct {
	Name string `yaml:"name" validate:"required,repository_name"`
	URL  string `yaml:"url,omitempty" validate:"omitempty,url"`
}

// UnmarshalYAML accepts either a bare well-known name or a {name, url} mapping.
func (r *RepositorySource) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Name = value.Value
		r.URL = ""
		return nil
	}

	type rawRepository RepositorySource
	var temp rawRepository
	if err := checkKnownKeys(value, "repository", "name", "url"); err != nil {
		return err
	}
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*r = RepositorySource(temp)
	return nil
}

// TaskSpec declares a named, parameterless task.
type TaskSpec struct {
	Name        string   `yaml:"name" validate:"required,task_name"`
	Description string   `yaml:"description,omitempty"`
	DependsOn   []string `yaml:"depends_on,omitempty" validate:"omitempty,dive,task_name"`
	Delete      []string `yaml:"delete,omitempty" validate:"omitempty,dive,required"`
}

func hasYAMLKey(node *yaml.Node, key string) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// checkKnownKeys rejects mapping keys outside allowed. Decoding through
// yaml.Node does not inherit the decoder's KnownFields setting.
func checkKnownKeys(node *yaml.Node, kind string, allowed ...string) error {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content); i += 2 {
		k := node.Content[i]
		known := false
		for _, a := range allowed {
			if k.Value == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("line %d: field %s not found in %s", k.Line, k.Value, kind)
		}
	}
	return nil
}
