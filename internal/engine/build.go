package engine

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/alexisbeaulieu97/buildscript/internal/descriptor"
	"github.com/alexisbeaulieu97/buildscript/internal/logger"
	"github.com/alexisbeaulieu97/buildscript/internal/resolve"
	"github.com/alexisbeaulieu97/buildscript/internal/task"
	"github.com/alexisbeaulieu97/buildscript/internal/task/actions"
)

const tracerName = "github.com/alexisbeaulieu97/buildscript/internal/engine"

// Options configures a build.
type Options struct {
	// ProjectDir is the project root; defaults to the working directory.
	ProjectDir string
	// DescriptorPath overrides descriptor discovery in ProjectDir.
	DescriptorPath string
	Logger         *logger.Logger
	HTTPClient     *http.Client
	// Sources replaces the HTTP sources derived from the descriptor's repositories.
	Sources        []resolve.Source
	TracerProvider trace.TracerProvider
}

// Build is the explicit context of one build invocation: the loaded
// descriptor, the task registry and the resolver. Nothing here is global.
type Build struct {
	ProjectDir   string
	Descriptor   *descriptor.Descriptor
	Plugins      []descriptor.PluginReference
	Repositories []descriptor.RepositorySource
	Registry     *task.Registry
	Resolver     *resolve.Resolver

	log    *logger.Logger
	tracer trace.Tracer
}

// Configure runs the configuration phase: it loads and validates the
// descriptor, then registers the default clean task followed by declared
// tasks. Any error here aborts the build.
func Configure(ctx context.Context, opts Options) (*Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}

	path := opts.DescriptorPath
	if path == "" {
		path, err = descriptor.Find(projectDir)
		if err != nil {
			return nil, err
		}
	}

	desc, err := descriptor.Parse(path)
	if err != nil {
		return nil, err
	}

	plugins, err := desc.LoadPlugins()
	if err != nil {
		return nil, err
	}
	repos, err := desc.LoadRepositories()
	if err != nil {
		return nil, err
	}
	specs, err := desc.LoadTasks()
	if err != nil {
		return nil, err
	}

	log = log.ForProject(projectDir)
	registry := task.NewRegistry(log)
	if _, err := registry.Register(actions.NewCleanTask(projectDir)); err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if _, err := registry.Register(taskFromSpec(projectDir, spec)); err != nil {
			return nil, err
		}
	}

	sources := opts.Sources
	if sources == nil {
		sources = resolve.SourcesFor(repos, opts.HTTPClient)
	}

	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	log.WithFields(map[string]any{
		"descriptor":   path,
		"plugins":      len(plugins),
		"repositories": len(repos),
		"tasks":        registry.Len(),
	}).Debug("build configured")

	return &Build{
		ProjectDir:   projectDir,
		Descriptor:   desc,
		Plugins:      plugins,
		Repositories: repos,
		Registry:     registry,
		Resolver:     resolve.NewResolver(log, sources...),
		log:          log,
		tracer:       tp.Tracer(tracerName),
	}, nil
}

func taskFromSpec(projectDir string, spec descriptor.TaskSpec) task.Task {
	t := task.Task{
		Name:        spec.Name,
		Description: spec.Description,
		DependsOn:   spec.DependsOn,
	}
	if len(spec.Delete) > 0 {
		t.Actions = append(t.Actions, actions.NewDelete(projectDir, spec.Delete...))
	}
	return t
}
