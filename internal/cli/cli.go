package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/framegridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("framegridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
FrameGridGo - builds and runs the per-frame job graph of a declarative scene.

Usage:
  framegridgo [options] [SCENE_PATH]

Arguments:
  SCENE_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	sceneFlag := flagSet.String("scene", "", "Path to the scene file or directory.")
	sFlag := flagSet.String("s", "", "Path to the scene file or directory (shorthand).")
	framesFlag := flagSet.Int("frames", 1, "Number of frames to render.")
	intervalFlag := flagSet.Duration("frame-interval", 0, "Pause between frames, e.g. '16ms'.")
	workersFlag := flagSet.Int("workers", 4, "Number of concurrent workers for the executor.")
	jobCountFlag := flagSet.Int("job-count", 0, "Shards per render view for material gathering and command building. 0 uses one per worker.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	telemetryURLFlag := flagSet.String("telemetry-url", "", "socket.io endpoint frame reports are emitted to. Empty disables it.")
	telemetryNSFlag := flagSet.String("telemetry-namespace", "/", "socket.io namespace for frame reports.")
	insecureFlag := flagSet.Bool("telemetry-insecure", false, "Skip TLS certificate verification for the telemetry endpoint.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *sceneFlag != "" {
		path = *sceneFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Scene path determined.", "path", path)

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ScenePath:          path,
		Frames:             *framesFlag,
		FrameInterval:      *intervalFlag,
		WorkerCount:        *workersFlag,
		JobCount:           *jobCountFlag,
		HealthcheckPort:    *healthPortFlag,
		LogFormat:          logFormat,
		LogLevel:           logLevel,
		TelemetryURL:       *telemetryURLFlag,
		TelemetryNamespace: *telemetryNSFlag,
		InsecureSkipVerify: *insecureFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
