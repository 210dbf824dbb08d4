package descriptor

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

// hclRoot decodes every top-level block a descriptor may carry. Unknown
// blocks and attributes are rejected by gohcl.
type hclRoot struct {
	Plugins      []*hclPlugin     `hcl:"plugin,block"`
	Repositories []*hclRepository `hcl:"repository,block"`
	Tasks        []*hclTask       `hcl:"task,block"`
}

type hclPlugin struct {
	ID      string  `hcl:"id,label"`
	Version *string `hcl:"version,optional"`
	Apply   *bool   `hcl:"apply,optional"`
	Builtin *bool   `hcl:"builtin,optional"`
}

type hclRepository struct {
	Name string  `hcl:"name,label"`
	URL  *string `hcl:"url,optional"`
}

type hclTask struct {
	Name        string   `hcl:"name,label"`
	Description *string  `hcl:"description,optional"`
	DependsOn   []string `hcl:"depends_on,optional"`
	Delete      []string `hcl:"delete,optional"`
}

func decodeHCL(path string, data []byte) (*Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, bserrors.NewParseError(path, diagnosticLine(diags), diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, bserrors.NewParseError(path, diagnosticLine(diags), diags)
	}

	d := &Descriptor{}
	for _, p := range root.Plugins {
		d.Plugins = append(d.Plugins, PluginReference{
			ID:      p.ID,
			Version: stringOr(p.Version, ""),
			Apply:   boolOr(p.Apply, true),
			Builtin: boolOr(p.Builtin, false),
		})
	}
	for _, r := range root.Repositories {
		d.Repositories = append(d.Repositories, RepositorySource{Name: r.Name, URL: stringOr(r.URL, "")})
	}
	for _, t := range root.Tasks {
		d.Tasks = append(d.Tasks, TaskSpec{
			Name:        t.Name,
			Description: stringOr(t.Description, ""),
			DependsOn:   t.DependsOn,
			Delete:      t.Delete,
		})
	}
	return d, nil
}

func diagnosticLine(diags hcl.Diagnostics) int {
	for _, diag := range diags {
		if diag.Subject != nil {
			return diag.Subject.Start.Line
		}
	}
	return 0
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
