// Package upgrade runs the package manager command that installs a new release.
package upgrade

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog/log"
)

// VersionPlaceholder is replaced with the target version in a command template.
const VersionPlaceholder = "{{VERSION}}"

// Runner expands and executes an upgrade command template such as
// "go install example.com/tool@v{{VERSION}}".
type Runner struct {
	Template string
}

// Command returns the argv for upgrading to version.
func (r Runner) Command(version string) ([]string, error) {
	if strings.TrimSpace(r.Template) == "" {
		return nil, fmt.Errorf("empty upgrade command")
	}
	expanded := strings.ReplaceAll(r.Template, VersionPlaceholder, quoteForShlex(version))
	args, err := shlex.Split(expanded)
	if err != nil {
		return nil, fmt.Errorf("parsing upgrade command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("upgrade command produces no program")
	}
	return args, nil
}

// Validate checks that the template parses and its program is on PATH.
func (r Runner) Validate() error {
	args, err := r.Command("0.0.0")
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		return fmt.Errorf("upgrade command %q not found in PATH", args[0])
	}
	return nil
}

// Run executes the upgrade command for version, streaming its output.
func (r Runner) Run(ctx context.Context, version string, stdout, stderr io.Writer) error {
	args, err := r.Command(version)
	if err != nil {
		return err
	}

	log.Debug().Strs("argv", args).Msg("running upgrade command")

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Stdin = os.Stdin
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", args[0], err)
	}
	return nil
}

// quoteForShlex wraps a string in single quotes for safe shlex parsing.
// 'don't' becomes 'don'\''t'
func quoteForShlex(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
