package job

import "context"

// Sync is a barrier job. It does no work of its own beyond an optional
// function that moves small pieces of state computed by its predecessors
// to the jobs that run after it.
type Sync struct {
	Base
	fn func(ctx context.Context) error
}

// NewSync creates a barrier. fn may be nil.
func NewSync(id string, typ Type, fn func(ctx context.Context) error) *Sync {
	return &Sync{Base: NewBase(id, typ), fn: fn}
}

// Run calls the barrier function, if any.
func (s *Sync) Run(ctx context.Context) error {
	if s.fn == nil {
		return nil
	}
	return s.fn(ctx)
}

// Func adapts a plain function into a job. The renderer uses it for its
// fixed per-frame jobs.
type Func struct {
	Base
	fn func(ctx context.Context) error
}

// NewFunc creates a job running fn.
func NewFunc(id string, typ Type, fn func(ctx context.Context) error) *Func {
	return &Func{Base: NewBase(id, typ), fn: fn}
}

func (f *Func) Run(ctx context.Context) error {
	return f.fn(ctx)
}
