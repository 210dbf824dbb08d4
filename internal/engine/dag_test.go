package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/buildscript/internal/logger"
	"github.com/alexisbeaulieu97/buildscript/internal/task"
	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

type stubAction struct {
	name string
	err  error
	runs *[]string
}

func (a stubAction) Describe() string { return a.name }

func (a stubAction) Plan(context.Context) (string, error) { return "would " + a.name, nil }

func (a stubAction) Run(context.Context) error {
	if a.runs != nil {
		*a.runs = append(*a.runs, a.name)
	}
	return a.err
}

func registryWith(t *testing.T, tasks ...task.Task) *task.Registry {
	t.Helper()
	reg := task.NewRegistry(logger.Nop())
	for _, tk := range tasks {
		_, err := reg.Register(tk)
		require.NoError(t, err)
	}
	return reg
}

func TestBuildGraphOrdersDependenciesFirst(t *testing.T) {
	t.Parallel()

	reg := registryWith(t,
		task.Task{Name: "clean"},
		task.Task{Name: "assemble", DependsOn: []string{"clean", "generate"}},
		task.Task{Name: "generate", DependsOn: []string{"clean"}},
	)

	graph, err := BuildGraph(reg, []string{"assemble"})
	require.NoError(t, err)
	require.Equal(t, []string{"clean", "generate", "assemble"}, graph.Order)
}

func TestBuildGraphKeepsRequestOrderForIndependentTasks(t *testing.T) {
	t.Parallel()

	reg := registryWith(t, task.Task{Name: "clean"}, task.Task{Name: "lint"}, task.Task{Name: "docs"})

	graph, err := BuildGraph(reg, []string{"lint", "clean", "docs"})
	require.NoError(t, err)
	require.Equal(t, []string{"lint", "clean", "docs"}, graph.Order)
}

func TestBuildGraphOnlyIncludesRequestedClosure(t *testing.T) {
	t.Parallel()

	reg := registryWith(t, task.Task{Name: "clean"}, task.Task{Name: "lint"})

	graph, err := BuildGraph(reg, []string{"clean"})
	require.NoError(t, err)
	require.Equal(t, []string{"clean"}, graph.Order)
}

func TestBuildGraphDetectsCycles(t *testing.T) {
	t.Parallel()

	reg := registryWith(t,
		task.Task{Name: "a", DependsOn: []string{"c"}},
		task.Task{Name: "b", DependsOn: []string{"a"}},
		task.Task{Name: "c", DependsOn: []string{"b"}},
	)

	graph, err := BuildGraph(reg, []string{"a"})
	require.Nil(t, graph)

	var malformed *bserrors.MalformedDescriptorError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Message, "a, b, c")
}

func TestBuildGraphUnknownDependency(t *testing.T) {
	t.Parallel()

	reg := registryWith(t, task.Task{Name: "assemble", DependsOn: []string{"generate"}})

	_, err := BuildGraph(reg, []string{"assemble"})

	var malformed *bserrors.MalformedDescriptorError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "tasks.assemble.depends_on", malformed.Field)
}

func TestBuildGraphUnknownRequestedTask(t *testing.T) {
	t.Parallel()

	_, err := BuildGraph(registryWith(t, task.Task{Name: "clean"}), []string{"assemble"})
	require.ErrorContains(t, err, `"assemble"`)
}
