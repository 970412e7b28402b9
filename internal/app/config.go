package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenePath string // hcl file or directory

	Frames        int
	FrameInterval time.Duration
	WorkerCount   int
	JobCount      int // 0 means one shard per worker

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	TelemetryURL       string
	TelemetryNamespace string
	InsecureSkipVerify bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenePath == "" {
		return nil, errors.New("ScenePath is a required configuration field and cannot be empty")
	}
	if cfg.Frames < 1 {
		return nil, fmt.Errorf("frames must be at least 1, got %d", cfg.Frames)
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.JobCount < 0 {
		return nil, fmt.Errorf("job count cannot be negative, got %d", cfg.JobCount)
	}
	if cfg.FrameInterval < 0 {
		return nil, fmt.Errorf("frame interval cannot be negative, got %s", cfg.FrameInterval)
	}
	if cfg.TelemetryNamespace == "" {
		cfg.TelemetryNamespace = "/"
	}
	return &cfg, nil
}
