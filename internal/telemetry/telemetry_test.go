package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/framegraph"
	"github.com/specialistvlad/framegridgo/internal/renderer"
	"github.com/specialistvlad/framegridgo/internal/renderview"
	"github.com/specialistvlad/framegridgo/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() *renderer.Frame {
	root := framegraph.New(framegraph.Group, "root", nil)
	main := framegraph.New(framegraph.NoDraw, "main", root)
	compute := framegraph.New(framegraph.ComputeDispatch, "particles", root)

	rv0 := renderview.New(0, main, nil)
	rv0.CameraEntity = scene.NewEntity("camera")
	rv0.NoDraw = true
	rv0.Commands = []*renderview.RenderCommand{{}, {}}
	rv0.Lights = []*scene.Light{{}}

	rv1 := renderview.New(1, compute, nil)
	rv1.Compute = true
	rv1.Commands = []*renderview.RenderCommand{{IsCompute: true}}

	return &renderer.Frame{
		Views: []*renderview.RenderView{rv0, rv1},
		Stats: renderer.FrameStats{Frame: 3, Views: 2, Jobs: 40, Commands: 3, Duration: time.Millisecond},
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport(testFrame())

	want := []ViewSummary{
		{Index: 0, Leaf: "main", Camera: "camera", Commands: 2, Lights: 1, NoDraw: true},
		{Index: 1, Leaf: "particles", Commands: 1, Compute: true},
	}
	if diff := cmp.Diff(want, r.Views); diff != "" {
		t.Errorf("views mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint64(3), r.Stats.Frame)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"leaf":"particles"`)
	assert.NotContains(t, string(data), `"camera":""`)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	var p LogPublisher
	require.NoError(t, p.Publish(ctx, NewReport(testFrame())))
	require.NoError(t, p.Close())

	out := buf.String()
	assert.Contains(t, out, "Frame published.")
	assert.Contains(t, out, "frame=3")
	assert.Contains(t, out, "jobs=40")
}

type fakePublisher struct {
	published int
	closed    bool
	err       error
}

func (f *fakePublisher) Publish(context.Context, Report) error {
	f.published++
	return f.err
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return f.err
}

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	ok, bad := &fakePublisher{}, &fakePublisher{err: boom}
	m := Multi{bad, ok}

	err := m.Publish(ctxlog.Discard(context.Background()), Report{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, ok.published, "publishing must continue past a failure")
	assert.Equal(t, 1, bad.published)

	require.ErrorIs(t, m.Close(), boom)
	assert.True(t, ok.closed)
}

func TestParseEndpoint(t *testing.T) {
	base, path, err := parseEndpoint("http://localhost:3000/socket.io/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", base)
	assert.Equal(t, "/socket.io/", path)

	testCases := []struct {
		name string
		url  string
		want string
	}{
		{"bad syntax", "http://[::1", "failed to parse URL"},
		{"scheme", "ftp://localhost", "unsupported URL scheme 'ftp'"},
		{"no host", "http:///path", "has no host"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseEndpoint(tc.url)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDialSocketIORejectsBadURL(t *testing.T) {
	_, err := DialSocketIO(ctxlog.Discard(context.Background()), SocketIOOptions{URL: "ftp://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported URL scheme")
}
