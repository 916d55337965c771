package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// executeCommand runs the root command in-process and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeCommandWithStderr(t, args...)
	return out, err
}

// executeCommandWithStderr is executeCommand that also returns stderr.
func executeCommandWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("GEMINI_API_KEY", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags() {
	configPath = ""
	parseFormFile = ""
	parseOffline = false
	parseVerbose = false
	stepsIndex = 0
	stepsStep = ""
	stepsJSON = false
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// getBinaryPath returns the path to the application_wizard binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "application_wizard"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/application_wizard ./cmd/application_wizard'", binaryPath)
	}

	return binaryPath
}
