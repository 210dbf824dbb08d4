package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/alexisbeaulieu97/buildscript/internal/model"
	"github.com/alexisbeaulieu97/buildscript/internal/task"
	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

// RunOptions controls task execution.
type RunOptions struct {
	DryRun bool
}

// Run executes the named tasks and their dependencies in dependency order.
// A failing task marks its dependents skipped; unrelated tasks still run.
// The returned error joins every task failure.
func (b *Build) Run(ctx context.Context, names []string, opts RunOptions) ([]model.TaskResult, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no task requested (available: %s)", strings.Join(b.Registry.Names(), ", "))
	}

	graph, err := BuildGraph(b.Registry, names)
	if err != nil {
		return nil, err
	}

	results := make([]model.TaskResult, 0, len(graph.Order))
	failed := make(map[string]bool, len(graph.Order))
	var errs []error

	for _, name := range graph.Order {
		node := graph.Nodes[name]

		if blocker := failedDependency(node, failed); blocker != "" {
			failed[name] = true
			b.log.ForTask(name).Warn("skipped: dependency " + blocker + " failed")
			results = append(results, model.TaskResult{
				Task:      name,
				Status:    model.StatusSkipped,
				Message:   fmt.Sprintf("dependency %s failed", blocker),
				Timestamp: time.Now(),
			})
			continue
		}

		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		res := b.runTask(ctx, node.Task, opts)
		if res.Error != nil {
			failed[name] = true
			errs = append(errs, res.Error)
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

func failedDependency(node *Node, failed map[string]bool) string {
	for _, dep := range node.DependsOn {
		if failed[dep.Name] {
			return dep.Name
		}
	}
	return ""
}

func (b *Build) runTask(ctx context.Context, t task.Task, opts RunOptions) model.TaskResult {
	ctx, span := b.tracer.Start(ctx, "task.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("task.name", t.Name),
		attribute.Bool("task.dry_run", opts.DryRun),
	)

	log := b.log.ForTask(t.Name)
	log.Info("task started")
	start := time.Now()

	var messages []string
	for _, action := range t.Actions {
		var (
			msg string
			err error
		)
		if opts.DryRun {
			msg, err = action.Plan(ctx)
		} else {
			err = action.Run(ctx)
			msg = action.Describe()
		}

		if err != nil {
			err = bserrors.NewTaskError(t.Name, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error(err, "task failed")
			return model.TaskResult{
				Task:      t.Name,
				Status:    model.StatusFailed,
				Message:   err.Error(),
				Error:     err,
				Duration:  time.Since(start),
				Timestamp: time.Now(),
			}
		}
		messages = append(messages, msg)
	}

	status := model.StatusSuccess
	if opts.DryRun {
		status = model.StatusPlanned
	}
	if len(messages) == 0 {
		messages = append(messages, "no actions")
	}

	log.With("duration", time.Since(start).String()).Info("task finished")
	return model.TaskResult{
		Task:      t.Name,
		Status:    status,
		Message:   strings.Join(messages, "; "),
		Duration:  time.Since(start),
		Timestamp: time.Now(),
	}
}
