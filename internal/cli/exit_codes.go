package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
)

// Exit codes for the whatsnew CLI
// These codes support scripting and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates an unexpected runtime failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitInvalidConfig indicates configuration could not be loaded or validated
	ExitInvalidConfig = 3

	// ExitVersionNotFound indicates the requested version is not in the changelog
	ExitVersionNotFound = 4

	// ExitNetwork indicates a remote endpoint could not be reached
	ExitNetwork = 5
)

// ExitError carries an exit code for errors that were already reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitInvalidConfig
		case clierrors.NotFound:
			return ExitVersionNotFound
		case clierrors.Network:
			return ExitNetwork
		}
	}
	return ExitFailure
}
