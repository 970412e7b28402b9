package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	valid := Config{ScenePath: "scene.hcl", Frames: 1, WorkerCount: 1}

	cfg, err := NewConfig(valid)
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.TelemetryNamespace, "namespace defaults to the root")

	testCases := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{"missing scene", func(c *Config) { c.ScenePath = "" }, "ScenePath is a required"},
		{"zero frames", func(c *Config) { c.Frames = 0 }, "frames must be at least 1"},
		{"zero workers", func(c *Config) { c.WorkerCount = 0 }, "workers must be at least 1"},
		{"negative job count", func(c *Config) { c.JobCount = -1 }, "job count cannot be negative"},
		{"negative interval", func(c *Config) { c.FrameInterval = -time.Second }, "frame interval cannot be negative"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.modify(&c)
			_, err := NewConfig(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
