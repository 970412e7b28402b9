package executor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/specialistvlad/framegridgo/internal/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects the order in which jobs ran.
type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) job(id string, fn func() error, deps ...job.Job) *job.Func {
	j := job.NewFunc(id, job.RenderView, func(ctx context.Context) error {
		r.mu.Lock()
		r.order = append(r.order, id)
		r.mu.Unlock()
		if fn != nil {
			return fn()
		}
		return nil
	})
	for _, d := range deps {
		j.AddDependency(d)
	}
	return j
}

func (r *recorder) index(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range r.order {
		if v == id {
			return i
		}
	}
	return -1
}

func TestNewClampsWorkers(t *testing.T) {
	assert.Equal(t, 1, New(0).Workers())
	assert.Equal(t, 1, New(-3).Workers())
	assert.Equal(t, 4, New(4).Workers())
}

func TestRunEmpty(t *testing.T) {
	report, err := New(2).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Jobs)
}

func TestRunRespectsDependencies(t *testing.T) {
	rec := &recorder{}
	a := rec.job("a", nil)
	b := rec.job("b", nil, a)
	c := rec.job("c", nil, a)
	d := rec.job("d", nil, b, c)
	e := rec.job("e", nil, d)

	report, err := New(4).Run(context.Background(), []job.Job{e, d, c, b, a})
	require.NoError(t, err)
	assert.Equal(t, 5, report.Completed)
	assert.Zero(t, report.Failed)
	assert.Zero(t, report.Skipped)

	require.Len(t, rec.order, 5)
	assert.Less(t, rec.index("a"), rec.index("b"))
	assert.Less(t, rec.index("a"), rec.index("c"))
	assert.Less(t, rec.index("b"), rec.index("d"))
	assert.Less(t, rec.index("c"), rec.index("d"))
	assert.Less(t, rec.index("d"), rec.index("e"))
}

func TestRunIgnoresDependenciesOutsideBatch(t *testing.T) {
	rec := &recorder{}
	outside := rec.job("outside", nil)
	inside := rec.job("inside", nil, outside)

	report, err := New(1).Run(context.Background(), []job.Job{inside})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, []string{"inside"}, rec.order)
}

func TestRunRunsIndependentJobsConcurrently(t *testing.T) {
	var running, peak atomic.Int32
	release := make(chan struct{})
	var jobs []job.Job
	for i := range 4 {
		jobs = append(jobs, job.NewFunc(string(rune('a'+i)), job.RenderView, func(ctx context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-release
			running.Add(-1)
			return nil
		}))
	}

	done := make(chan error, 1)
	go func() {
		_, err := New(4).Run(context.Background(), jobs)
		done <- err
	}()

	require.Eventually(t, func() bool { return peak.Load() == 4 }, time.Second, time.Millisecond)
	close(release)
	require.NoError(t, <-done)
}

func TestRunFailureSkipsDependents(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{}
	a := rec.job("a", nil)
	b := rec.job("b", func() error { return boom }, a)
	c := rec.job("c", nil, b)
	d := rec.job("d", nil, c)

	report, err := New(2).Run(context.Background(), []job.Job{a, b, c, d})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "execution failed for b")
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, -1, rec.index("c"))
	assert.Equal(t, -1, rec.index("d"))
}

func TestRunFailureCancelsRunningJobs(t *testing.T) {
	boom := errors.New("boom")
	started := make(chan struct{})
	slow := job.NewFunc("slow", job.RenderView, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	bad := job.NewFunc("bad", job.RenderView, func(ctx context.Context) error {
		<-started
		return boom
	})

	done := make(chan struct{})
	var report *Report
	var err error
	go func() {
		defer close(done)
		report, err = New(2).Run(context.Background(), []job.Job{slow, bad})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("a failed job did not cancel the job still running")
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "execution failed for bad")
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped, "the canceled job is skipped, not failed")
}

func TestRunFailureOnLastWorkerSkipsQueuedJobs(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{}
	a := rec.job("a", func() error { return boom })
	b := rec.job("b", nil)
	c := rec.job("c", nil)

	report, err := New(1).Run(context.Background(), []job.Job{a, b, c})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, []string{"a"}, rec.order)
}

func TestRunRecoversPanics(t *testing.T) {
	rec := &recorder{}
	a := rec.job("a", func() error { panic("kaboom") })
	b := rec.job("b", nil, a)

	report, err := New(1).Run(context.Background(), []job.Job{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job a panicked: kaboom")
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	a := rec.job("a", nil)
	b := rec.job("b", nil, a)

	report, err := New(2).Run(ctx, []job.Job{a, b})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "execution canceled")
	assert.Equal(t, 2, report.Skipped)
	assert.Empty(t, rec.order)
}

func TestRunRejectsCycles(t *testing.T) {
	a := job.NewSync("a", job.RenderView, nil)
	b := job.NewSync("b", job.RenderView, nil)
	a.AddDependency(b)
	b.AddDependency(a)

	_, err := New(1).Run(context.Background(), []job.Job{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error validating dependency graph")
}
