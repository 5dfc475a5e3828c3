package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	whatsnewBinaryPath string
	whatsnewBuildOnce  sync.Once
	whatsnewBuildErr   error
)

// E2EEnv runs the whatsnew binary in an isolated home and working directory.
type E2EEnv struct {
	t       *testing.T
	homeDir string
	workDir string
	env     []string
}

// CommandResult is the outcome of one whatsnew invocation.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv builds whatsnew (once per test binary) and prepares an
// environment where no user or project config from the host is visible.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	whatsnewBuildOnce.Do(func() {
		whatsnewBinaryPath, whatsnewBuildErr = buildWhatsnew()
	})
	if whatsnewBuildErr != nil {
		t.Fatalf("building whatsnew: %v", whatsnewBuildErr)
	}

	root := t.TempDir()
	e := &E2EEnv{
		t:       t,
		homeDir: filepath.Join(root, "home"),
		workDir: filepath.Join(root, "work"),
	}
	for _, dir := range []string{e.homeDir, e.workDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}

	e.env = []string{
		"HOME=" + e.homeDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.homeDir, ".config"),
		"PATH=" + os.Getenv("PATH"),
		"NO_COLOR=1",
	}
	return e
}

// WorkDir is the working directory commands run in.
func (e *E2EEnv) WorkDir() string {
	return e.workDir
}

// SetEnv adds an environment variable for subsequent runs.
func (e *E2EEnv) SetEnv(key, value string) {
	e.env = append(e.env, key+"="+value)
}

// WriteFile writes content relative to the working directory.
func (e *E2EEnv) WriteFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.workDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// Run executes whatsnew with args.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	cmd := exec.Command(whatsnewBinaryPath, args...)
	cmd.Dir = e.workDir
	cmd.Env = e.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		e.t.Fatalf("running whatsnew: %v", err)
	}
	return result
}

func buildWhatsnew() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "whatsnew-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "whatsnew")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/whatsnew")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\nOutput: %s", err, output)
	}
	return binaryPath, nil
}
