package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/buildscript/internal/task"
	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

// Node represents a task vertex in the execution DAG.
type Node struct {
	Name       string
	Task       task.Task
	DependsOn  []*Node
	Dependents []*Node
	order      int
}

// Graph holds the requested tasks and everything they transitively depend on.
type Graph struct {
	Nodes map[string]*Node
	Order []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{Nodes: make(map[string]*Node)}
}

// AddNode inserts a task as a vertex in the graph.
func (g *Graph) AddNode(t task.Task) (*Node, error) {
	if g.Nodes == nil {
		g.Nodes = make(map[string]*Node)
	}

	if _, exists := g.Nodes[t.Name]; exists {
		return nil, fmt.Errorf("duplicate task %q in graph", t.Name)
	}

	node := &Node{Name: t.Name, Task: t, order: len(g.Nodes)}
	g.Nodes[t.Name] = node
	return node, nil
}

// AddEdge records that task "to" depends on task "from".
func (g *Graph) AddEdge(from, to string) error {
	source, ok := g.Nodes[from]
	if !ok {
		return fmt.Errorf("unknown dependency %q", from)
	}

	target, ok := g.Nodes[to]
	if !ok {
		return fmt.Errorf("unknown dependency target %q", to)
	}

	source.Dependents = append(source.Dependents, target)
	target.DependsOn = append(target.DependsOn, source)
	return nil
}

// TopologicalSort orders the graph with Kahn's algorithm. Among ready tasks
// the one discovered first runs first, so independent tasks keep request order.
func (g *Graph) TopologicalSort() error {
	indegree := make(map[string]int, len(g.Nodes))
	for name, node := range g.Nodes {
		indegree[name] = len(node.DependsOn)
	}

	var ready []*Node
	for _, node := range g.Nodes {
		if indegree[node.Name] == 0 {
			ready = append(ready, node)
		}
	}

	order := make([]string, 0, len(g.Nodes))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i].order < ready[j].order })
		node := ready[0]
		ready = ready[1:]
		order = append(order, node.Name)

		for _, dependent := range node.Dependents {
			indegree[dependent.Name]--
			if indegree[dependent.Name] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		var stuck []string
		for name, degree := range indegree {
			if degree > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return bserrors.NewMalformedDescriptorError("tasks", fmt.Sprintf("dependency cycle between tasks: %s", strings.Join(stuck, ", ")), nil)
	}

	g.Order = order
	return nil
}

// BuildGraph collects the requested tasks and their transitive dependencies
// from the registry and sorts them.
func BuildGraph(reg *task.Registry, requested []string) (*Graph, error) {
	g := NewGraph()

	var visit func(name, requiredBy string) error
	visit = func(name, requiredBy string) error {
		if _, seen := g.Nodes[name]; seen {
			return nil
		}
		t, err := reg.Get(name)
		if err != nil {
			if requiredBy != "" {
				return bserrors.NewMalformedDescriptorError(fmt.Sprintf("tasks.%s.depends_on", requiredBy), fmt.Sprintf("references unknown task %q", name), err)
			}
			return err
		}
		if _, err := g.AddNode(t); err != nil {
			return err
		}
		for _, dep := range t.DependsOn {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range requested {
		if err := visit(name, ""); err != nil {
			return nil, err
		}
	}

	for _, node := range g.Nodes {
		for _, dep := range node.Task.DependsOn {
			if err := g.AddEdge(dep, node.Name); err != nil {
				return nil, err
			}
		}
	}

	if err := g.TopologicalSort(); err != nil {
		return nil, err
	}
	return g, nil
}
