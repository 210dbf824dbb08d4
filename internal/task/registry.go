package task

import (
	"fmt"

	"github.com/alexisbeaulieu97/buildscript/internal/logger"
	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

// Registry holds the tasks of one build. It is owned by a single build
// context and is not safe for concurrent mutation.
type Registry struct {
	log      *logger.Logger
	tasks    []Task
	index    map[string]int
	warnings []*bserrors.DuplicateTaskWarning
}

// NewRegistry creates an empty registry that reports duplicates through log.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{log: log, index: make(map[string]int)}
}

// Register adds t. Registering a name that already exists replaces the
// earlier task in place and returns a DuplicateTaskWarning, which is also
// logged. A nil warning means the name was new.
func (r *Registry) Register(t Task) (*bserrors.DuplicateTaskWarning, error) {
	if t.Name == "" {
		return nil, bserrors.NewMalformedDescriptorError("tasks", "task name must not be empty", nil)
	}

	if idx, exists := r.index[t.Name]; exists {
		r.tasks[idx] = t
		warning := &bserrors.DuplicateTaskWarning{Task: t.Name}
		r.warnings = append(r.warnings, warning)
		r.log.ForTask(t.Name).Warn(warning.Error())
		return warning, nil
	}

	r.index[t.Name] = len(r.tasks)
	r.tasks = append(r.tasks, t)
	r.log.ForTask(t.Name).Debug("task registered")
	return nil, nil
}

// Get retrieves a task by name.
func (r *Registry) Get(name string) (Task, error) {
	idx, ok := r.index[name]
	if !ok {
		return Task{}, fmt.Errorf("task %q not found in %v", name, r.Names())
	}
	return r.tasks[idx], nil
}

// Has reports whether a task with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns task names in first-registration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Name)
	}
	return out
}

// Tasks returns a copy of the registered tasks in first-registration order.
func (r *Registry) Tasks() []Task {
	return append([]Task(nil), r.tasks...)
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Warnings returns every duplicate warning emitted so far.
func (r *Registry) Warnings() []*bserrors.DuplicateTaskWarning {
	return append([]*bserrors.DuplicateTaskWarning(nil), r.warnings...)
}
