// Package dag holds the dependency graph of one batch of jobs. The executor
// builds it from a flattened job list with FromJobs, validates it, and walks
// it to release dependents as their predecessors complete.
//
// Nodes are keyed by job ID. The graph keeps insertion order everywhere it
// iterates, so cycle reports, dependency listings and topological orders
// are reproducible from one run to the next.
package dag
