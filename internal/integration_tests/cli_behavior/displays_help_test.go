package integration_tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/specialistvlad/framegridgo/internal/cli"
)

// Test for: displays help
func TestCLI_DisplaysHelp_WhenNoScenePathIsProvided(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outW := &bytes.Buffer{}

	// --- Act ---
	appConfig, shouldExit, err := cli.Parse([]string{}, outW)

	// --- Assert ---
	if err != nil {
		t.Fatalf("cli.Parse() returned an unexpected error: %v", err)
	}
	if !shouldExit {
		t.Fatal("cli.Parse() should have indicated an exit, but it did not")
	}
	if !strings.Contains(outW.String(), "SCENE_PATH") {
		t.Errorf("expected output to describe SCENE_PATH, but got:\n%s", outW.String())
	}
	if appConfig != nil {
		t.Errorf("expected a nil Config when displaying help, but got a non-nil config")
	}
}
