// Package task defines named, parameterless units of build-time work and the
// registry a build uses to look them up.
package task

import "context"

// Action is one ordered, side-effecting operation of a task.
type Action interface {
	// Describe returns a short human-readable summary, e.g. "delete build".
	Describe() string
	// Plan reports what Run would do without mutating anything.
	Plan(ctx context.Context) (string, error)
	// Run performs the operation.
	Run(ctx context.Context) error
}

// Task is a named sequence of actions, optionally depending on other tasks.
type Task struct {
	Name        string
	Description string
	DependsOn   []string
	Actions     []Action
}
