// Package rendercache holds the per-leaf results that survive between
// frames: layer-filtered entities, gathered material parameters,
// renderable and computable entity lists, and lights.
//
// # Purpose
//
// A render-view builder only recomputes a cached result when its cache
// flag says the result is stale. Otherwise the command-building sync job
// reads the value stored by an earlier frame. The cache is what makes the
// flag-gated jobs optional.
//
// # Concurrency Model
//
// Leaves are kept in a sync.Map keyed by frame-graph node id. The key space
// is stable (one entry per leaf) while the values are rewritten every frame
// by cache-sync jobs running on different workers, which is the access
// pattern sync.Map is built for. Each leaf entry guards its own fields with
// an RWMutex, so two views never contend.
package rendercache
