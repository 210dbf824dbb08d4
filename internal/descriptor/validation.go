package descriptor

import (
	"fmt"

	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

// Validate performs structural and cross-field validation on the whole descriptor.
func Validate(d *Descriptor) error {
	if d == nil {
		return bserrors.NewMalformedDescriptorError("", "descriptor is nil", nil)
	}

	if err := validatePlugins(d.Plugins); err != nil {
		return withPath(err, d.Path)
	}
	if err := validateRepositories(d.Repositories); err != nil {
		return withPath(err, d.Path)
	}
	if err := validateTasks(d.Tasks); err != nil {
		return withPath(err, d.Path)
	}
	return nil
}

func validatePlugins(plugins []PluginReference) error {
	v := validatorInstance()
	seen := make(map[string]int, len(plugins))

	for i, p := range plugins {
		if err := v.Struct(p); err != nil {
			return convertValidationError(err, fieldForPlugin(i, ""))
		}
		if p.Version == "" && !p.Builtin {
			return bserrors.NewMalformedDescriptorError(fieldForPlugin(i, "version"), fmt.Sprintf("plugin %q requires a version", p.ID), nil)
		}
		if first, exists := seen[p.ID]; exists {
			return bserrors.NewMalformedDescriptorError(fieldForPlugin(i, "id"), fmt.Sprintf("duplicate plugin id %q (first declared at plugins[%d])", p.ID, first), nil)
		}
		seen[p.ID] = i
	}

	return nil
}

func validateRepositories(repos []RepositorySource) error {
	v := validatorInstance()
	seen := make(map[string]struct{}, len(repos))

	for i, r := range repos {
		if err := v.Struct(r); err != nil {
			return convertValidationError(err, fieldForRepository(i, ""))
		}
		if r.URL == "" {
			if _, ok := WellKnownURL(r.Name); !ok {
				return bserrors.NewMalformedDescriptorError(fieldForRepository(i, "url"), fmt.Sprintf("repository %q is not well-known and needs a url", r.Name), nil)
			}
		}
		if _, exists := seen[r.Name]; exists {
			return bserrors.NewMalformedDescriptorError(fieldForRepository(i, "name"), fmt.Sprintf("duplicate repository %q", r.Name), nil)
		}
		seen[r.Name] = struct{}{}
	}

	return nil
}

// validateTasks checks each declaration in isolation. Duplicate names are
// allowed here; the registry replaces earlier definitions and warns.
func validateTasks(tasks []TaskSpec) error {
	v := validatorInstance()

	for i, t := range tasks {
		if err := v.Struct(t); err != nil {
			return convertValidationError(err, fieldForTask(i, ""))
		}
		if len(t.Delete) == 0 && len(t.DependsOn) == 0 {
			return bserrors.NewMalformedDescriptorError(fieldForTask(i, ""), fmt.Sprintf("task %q declares no actions and no dependencies", t.Name), nil)
		}
		for _, dep := range t.DependsOn {
			if dep == t.Name {
				return bserrors.NewMalformedDescriptorError(fieldForTask(i, "depends_on"), fmt.Sprintf("task %q cannot depend on itself", t.Name), nil)
			}
		}
	}

	return nil
}
