package dag

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/framegridgo/internal/job"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// FromJobs builds the graph of a flattened job list. Every dependency that
// is itself in the list becomes an edge; dependencies outside the list are
// left out, since they belong to work scheduled elsewhere. Duplicate IDs
// and cycles are reported as errors.
func FromJobs(jobs []job.Job) (*Graph, error) {
	g := New()
	for _, j := range jobs {
		if err := g.AddNode(j); err != nil {
			return nil, err
		}
	}
	for _, j := range jobs {
		for _, dep := range j.Dependencies() {
			if !g.Has(dep.ID()) {
				continue
			}
			if err := g.AddEdge(dep.ID(), j.ID()); err != nil {
				return nil, fmt.Errorf("failed to link %s to %s: %w", dep.ID(), j.ID(), err)
			}
		}
	}
	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	return g, nil
}

// AddNode adds j under its ID. Adding the same job twice does nothing;
// adding a different job under an existing ID is an error.
func (g *Graph) AddNode(j job.Job) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := j.ID()
	if existing, ok := g.nodes[id]; ok {
		if existing.job != j {
			return fmt.Errorf("duplicate job id: %s", id)
		}
		return nil
	}

	n := &node{id: id, job: j}
	g.nodes[id] = n
	g.order = append(g.order, n)
	return nil
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if slices.Contains(toNode.deps, fromNode) {
		return nil
	}
	toNode.deps = append(toNode.deps, fromNode)
	fromNode.dependents = append(fromNode.dependents, toNode)
	return nil
}

func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.order)
}

// Job returns the job stored under id, or nil.
func (g *Graph) Job(id string) job.Job {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	if n, ok := g.nodes[id]; ok {
		return n.job
	}
	return nil
}

// Jobs returns every job in insertion order.
func (g *Graph) Jobs() []job.Job {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	out := make([]job.Job, len(g.order))
	for i, n := range g.order {
		out[i] = n.job
	}
	return out
}

// Dependencies returns the jobs that the given job depends on within the
// graph.
func (g *Graph) Dependencies(id string) ([]job.Job, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return jobsOf(n.deps), nil
}

// Dependents returns the jobs that depend on the given job.
func (g *Graph) Dependents(id string) ([]job.Job, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return jobsOf(n.dependents), nil
}

func jobsOf(nodes []*node) []job.Job {
	out := make([]job.Job, len(nodes))
	for i, n := range nodes {
		out[i] = n.job
	}
	return out
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[*node]bool)
	temporary := make(map[*node]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n] {
			return nil
		}
		if temporary[n] {
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}

		temporary[n] = true
		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n)
		permanent[n] = true
		return nil
	}

	for _, n := range g.order {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// TopologicalOrder returns the jobs so that every job comes after all of
// its dependencies. Among jobs that become ready together, insertion order
// wins, so the result is stable for a given graph.
func (g *Graph) TopologicalOrder() ([]job.Job, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	remaining := make(map[*node]int, len(g.order))
	var queue []*node
	for _, n := range g.order {
		remaining[n] = len(n.deps)
		if len(n.deps) == 0 {
			queue = append(queue, n)
		}
	}

	out := make([]job.Job, 0, len(g.order))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		out = append(out, n.job)
		for _, d := range n.dependents {
			remaining[d]--
			if remaining[d] == 0 {
				queue = append(queue, d)
			}
		}
	}
	if len(out) != len(g.order) {
		return nil, fmt.Errorf("cycle detected: %d of %d jobs could not be ordered", len(g.order)-len(out), len(g.order))
	}
	return out, nil
}
