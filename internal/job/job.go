// Package job defines the unit of work scheduled by the executor: something
// that can run, and that names the jobs which must complete before it.
package job

import (
	"context"
	"reflect"
	"slices"
)

// Job is a single vertex of a frame's job graph.
type Job interface {
	// ID is unique within one frame. It is used for logging and for
	// deterministic ordering in the dag package.
	ID() string
	Type() Type
	Run(ctx context.Context) error
	// Dependencies returns the jobs that must complete before Run is called.
	Dependencies() []Job
	AddDependency(dep Job)
}

// Base implements the bookkeeping part of Job. Concrete jobs embed it and
// provide Run.
type Base struct {
	id   string
	typ  Type
	deps []Job
}

// NewBase returns a Base with the given identity and no dependencies.
func NewBase(id string, typ Type) Base {
	return Base{id: id, typ: typ}
}

func (b *Base) ID() string { return b.id }

func (b *Base) Type() Type { return b.typ }

func (b *Base) String() string { return b.id }

// Dependencies returns the jobs this job waits for, in insertion order.
func (b *Base) Dependencies() []Job {
	return b.deps
}

// AddDependency records dep as a predecessor. Nil and duplicate
// dependencies are ignored so that wiring code can be written without
// presence checks.
func (b *Base) AddDependency(dep Job) {
	if isNil(dep) || Contains(b.deps, dep) {
		return
	}
	b.deps = append(b.deps, dep)
}

// ClearDependencies drops every recorded predecessor.
func (b *Base) ClearDependencies() {
	b.deps = nil
}

// Contains reports whether j is present in jobs (identity comparison).
func Contains(jobs []Job, j Job) bool {
	return slices.ContainsFunc(jobs, func(candidate Job) bool { return candidate == j })
}

// isNil catches typed nil pointers stored in the interface, which happens
// when an optional job accessor returns a nil *T.
func isNil(j Job) bool {
	if j == nil {
		return true
	}
	v := reflect.ValueOf(j)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
