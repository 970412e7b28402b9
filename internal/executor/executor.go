// Package executor runs a batch of jobs on a fixed pool of workers,
// starting each job as soon as every one of its dependencies has finished.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/dag"
	"github.com/specialistvlad/framegridgo/internal/job"
	"golang.org/x/sync/errgroup"
)

// ErrSkipped marks jobs that never ran because a dependency failed.
var ErrSkipped = errors.New("skipped")

type state int32

const (
	pending state = iota
	running
	done
	failed
)

// task is the execution state of one job within a single Run.
type task struct {
	job        job.Job
	depCount   atomic.Int32
	dependents []*task
	state      atomic.Int32
	err        error
	skipOnce   sync.Once
}

// batch is the queue shared by the workers of one Run. readyChan is closed
// once every task has been resolved.
type batch struct {
	readyChan chan *task
	remaining atomic.Int32
}

// resolve records the final state of t. It must be called exactly once per
// task, after t has queued its dependents.
func (b *batch) resolve(t *task, s state, err error) {
	t.err = err
	t.state.Store(int32(s))
	if b.remaining.Add(-1) == 0 {
		close(b.readyChan)
	}
}

// Report summarizes one Run.
type Report struct {
	Jobs      int
	Completed int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

// Executor owns the worker count. It keeps no state between runs and may
// be reused.
type Executor struct {
	numWorkers int
}

// New creates an executor with numWorkers workers (at least one).
func New(numWorkers int) *Executor {
	return &Executor{numWorkers: max(numWorkers, 1)}
}

func (e *Executor) Workers() int { return e.numWorkers }

// Run executes jobs and blocks until each one has completed, failed or
// been skipped. A dependency that is not part of jobs counts as already
// satisfied. The first failure stops its worker and cancels the context the
// other jobs run with: jobs not yet started are skipped, and the returned
// error wraps that first failure.
func (e *Executor) Run(ctx context.Context, jobs []job.Job) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	graph, err := dag.FromJobs(jobs)
	if err != nil {
		return nil, err
	}
	tasks, err := newTasks(graph)
	if err != nil {
		return nil, err
	}
	report := &Report{Jobs: len(tasks)}
	if len(tasks) == 0 {
		return report, nil
	}

	b := &batch{readyChan: make(chan *task, len(tasks))}
	b.remaining.Store(int32(len(tasks)))

	rootCount := 0
	for _, t := range tasks {
		if t.depCount.Load() == 0 {
			b.readyChan <- t
			rootCount++
		}
	}
	logger.Debug("Found all root jobs.", "count", rootCount, "jobs", len(tasks))

	workers, workersCtx := errgroup.WithContext(ctx)
	for i := 0; i < e.numWorkers; i++ {
		workers.Go(func() error {
			return e.worker(workersCtx, b, i)
		})
	}
	runErr := workers.Wait()
	report.Duration = time.Since(start)

	var failedJobs []string
	for _, t := range tasks {
		switch state(t.state.Load()) {
		case done:
			report.Completed++
		case failed:
			if errors.Is(t.err, ErrSkipped) || errors.Is(t.err, context.Canceled) {
				report.Skipped++
				continue
			}
			report.Failed++
			failedJobs = append(failedJobs, t.job.ID())
		default:
			// Still queued when the last worker stopped on a failure.
			t.err = fmt.Errorf("%w after the run stopped", ErrSkipped)
			t.state.Store(int32(failed))
			report.Skipped++
		}
	}
	logger.Debug("All jobs finished.",
		"completed", report.Completed,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration", report.Duration,
	)

	if runErr != nil {
		return report, fmt.Errorf("execution failed for %s: %w", strings.Join(failedJobs, ", "), runErr)
	}
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("execution canceled: %w", err)
	}
	return report, nil
}

// newTasks mirrors the graph, in insertion order, with counters.
func newTasks(g *dag.Graph) ([]*task, error) {
	jobs := g.Jobs()
	tasks := make([]*task, len(jobs))
	byID := make(map[string]*task, len(jobs))
	for i, j := range jobs {
		tasks[i] = &task{job: j}
		byID[j.ID()] = tasks[i]
	}
	for _, t := range tasks {
		deps, err := g.Dependencies(t.job.ID())
		if err != nil {
			return nil, err
		}
		t.depCount.Store(int32(len(deps)))
		dependents, err := g.Dependents(t.job.ID())
		if err != nil {
			return nil, err
		}
		for _, d := range dependents {
			t.dependents = append(t.dependents, byID[d.ID()])
		}
	}
	return tasks, nil
}
