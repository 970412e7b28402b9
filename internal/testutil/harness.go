package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/framegridgo/internal/app"
	"github.com/specialistvlad/framegridgo/internal/hcl_adapter"
	"github.com/specialistvlad/framegridgo/internal/telemetry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteScene writes the given files, keyed by relative path, into a fresh
// temporary directory and returns it.
func WriteScene(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// RecordingPublisher keeps every report it is handed.
type RecordingPublisher struct {
	mu      sync.Mutex
	reports []telemetry.Report
	closed  bool
}

func (p *RecordingPublisher) Publish(_ context.Context, r telemetry.Report) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reports = append(p.reports, r)
	return nil
}

func (p *RecordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *RecordingPublisher) Reports() []telemetry.Report {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]telemetry.Report(nil), p.reports...)
}

func (p *RecordingPublisher) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// HarnessResult holds the outcomes of an app run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Reports   []telemetry.Report
}

// RunApp writes files to a temporary scene directory and runs the app over
// it for the given number of frames. Set FRAMEGRIDGO_TEST_LOGS=true to dump
// the log output of every run.
func RunApp(ctx context.Context, t *testing.T, files map[string]string, frames int) *HarnessResult {
	t.Helper()

	cfg, err := app.NewConfig(app.Config{
		ScenePath:   WriteScene(t, files),
		Frames:      frames,
		WorkerCount: 4,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	rec := &RecordingPublisher{}
	testApp := app.NewApp(logBuffer, cfg, hcl_adapter.NewLoader(), rec)
	runErr := testApp.Run(ctx)

	if os.Getenv("FRAMEGRIDGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}
	if runErr == nil {
		require.True(t, rec.Closed(), "publishers must be closed when the run ends")
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Reports:   rec.Reports(),
	}
}
