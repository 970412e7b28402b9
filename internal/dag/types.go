package dag

import (
	"sync"

	"github.com/specialistvlad/framegridgo/internal/job"
)

// Graph is a collection of jobs and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe. Iteration always
// follows insertion order so that every traversal is deterministic.
type Graph struct {
	// mutex protects the nodes map and order slice during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their job ID.
	nodes map[string]*node
	// order lists the nodes in insertion order.
	order []*node
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	id  string
	job job.Job
	// deps holds the nodes this node depends on (predecessors), in the
	// order the edges were added.
	deps []*node
	// dependents holds the nodes that depend on this node (successors).
	dependents []*node
}

