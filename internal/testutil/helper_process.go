// Package testutil provides test helpers shared by whatsnew packages.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
)

// HelperProcessConfig configures the behavior of RunHelperProcess.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is written before the received arguments are echoed.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`
}

const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "WHATSNEW_WANT_HELPER_PROCESS"
	// EnvHelperProcessConfig contains JSON-encoded HelperProcessConfig.
	EnvHelperProcessConfig = "WHATSNEW_HELPER_PROCESS_CONFIG"
)

// RunHelperProcess turns the test binary into a fake external command.
// Call it from a dedicated test function:
//
//	func TestHelperProcess(t *testing.T) {
//	    testutil.RunHelperProcess(t)
//	}
//
// When WHATSNEW_WANT_HELPER_PROCESS=1 it prints the configured output, then
// one "arg: <value>" line per argument after "--", and exits. Otherwise it
// returns immediately.
func RunHelperProcess(t *testing.T) {
	t.Helper()
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	config := HelperProcessConfig{}
	if raw := os.Getenv(EnvHelperProcessConfig); raw != "" {
		// Ignore parse errors; use defaults on failure
		_ = json.Unmarshal([]byte(raw), &config)
	}

	fmt.Fprint(os.Stdout, config.Stdout)
	for _, arg := range argsAfterSeparator(os.Args) {
		fmt.Fprintf(os.Stdout, "arg: %s\n", arg)
	}
	fmt.Fprint(os.Stderr, config.Stderr)
	os.Exit(config.ExitCode)
}

// EnableHelperProcess sets the environment so that commands started by the
// test run as helper processes with config. It uses t.Setenv, so the calling
// test must not be parallel.
func EnableHelperProcess(t *testing.T, config HelperProcessConfig) {
	t.Helper()

	raw, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("encoding helper config: %v", err)
	}
	t.Setenv(EnvWantHelperProcess, "1")
	t.Setenv(EnvHelperProcessConfig, string(raw))
}

// HelperCommandTemplate returns an upgrade command template that re-runs
// the test binary as testName, passing rest after a "--" separator.
func HelperCommandTemplate(t *testing.T, testName string, rest ...string) string {
	t.Helper()

	testBinary, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}
	parts := []string{quote(testBinary), "-test.run=^" + testName + "$", "--"}
	return strings.Join(append(parts, rest...), " ")
}

// ParseHelperArgs extracts the "arg: " lines printed by RunHelperProcess.
func ParseHelperArgs(stdout string) []string {
	var args []string
	for _, line := range strings.Split(stdout, "\n") {
		if v, ok := strings.CutPrefix(line, "arg: "); ok {
			args = append(args, v)
		}
	}
	return args
}

func argsAfterSeparator(args []string) []string {
	for i, a := range args {
		if a == "--" {
			return args[i+1:]
		}
	}
	return nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
