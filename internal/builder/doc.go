/*
Package builder constructs, once per frame and once per frame-graph leaf, the
graph of jobs that computes one render view.

A RenderViewBuilder is used in three phases:

 1. Configuration: the caller sets the five cache-rebuild flags (layer,
    material gatherer, light gatherer, renderable, computable). A flag that
    is false means the previous frame's cached result for this leaf is still
    valid and the jobs recomputing it are left out of the graph.

 2. Preparation: PrepareJobs instantiates the jobs this frame needs. The
    jobs that never depend on a flag (render view, proximity filter,
    frustum culling and its sync, clear draw-buffer index) already exist
    after New. PrepareJobs adds the initialization and command-building
    barriers, one command builder per shard, and every flag-gated job.

 3. Wiring: BuildJobHierarchy links the jobs to each other and to the
    renderer's fixed per-frame jobs, then returns the flattened job list in
    a deterministic order.

The returned jobs are handed to the executor. Once the executor finishes,
RenderViewJob().RenderView() holds the completed view with its sorted
render commands.

State moves between jobs only through the sync jobs. Their functions run on
whichever worker the executor picks, after every predecessor finished and
before any dependent starts, so they can read and write the jobs around
them without locks.
*/
package builder
