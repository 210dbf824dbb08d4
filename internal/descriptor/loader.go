package descriptor

// LoadPlugins returns the declared plugins in declaration order. It fails
// with a MalformedDescriptorError when an identifier is empty or duplicated,
// or when a non-builtin plugin has no version.
func (d *Descriptor) LoadPlugins() ([]PluginReference, error) {
	if d == nil {
		return nil, nil
	}
	if err := validatePlugins(d.Plugins); err != nil {
		return nil, withPath(err, d.Path)
	}
	return append([]PluginReference(nil), d.Plugins...), nil
}

// LoadRepositories returns the declared sources in declaration order with
// well-known names expanded to their URLs. An empty result is not an error
// here; resolution reports it instead.
func (d *Descriptor) LoadRepositories() ([]RepositorySource, error) {
	if d == nil {
		return nil, nil
	}
	if err := validateRepositories(d.Repositories); err != nil {
		return nil, withPath(err, d.Path)
	}

	out := make([]RepositorySource, 0, len(d.Repositories))
	for _, r := range d.Repositories {
		out = append(out, RepositorySource{Name: r.Name, URL: r.resolvedURL()})
	}
	return out, nil
}

// LoadTasks returns the declared task specs in declaration order.
func (d *Descriptor) LoadTasks() ([]TaskSpec, error) {
	if d == nil {
		return nil, nil
	}
	if err := validateTasks(d.Tasks); err != nil {
		return nil, withPath(err, d.Path)
	}

	out := make([]TaskSpec, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		t.DependsOn = append([]string(nil), t.DependsOn...)
		t.Delete = append([]string(nil), t.Delete...)
		out = append(out, t)
	}
	return out, nil
}
