package cmd

import "errors"

// Process exit codes.
const (
	ExitOK = 0
	// ExitFailure covers usage, config and scan failures.
	ExitFailure = 1
	// ExitDiagnostics means the pass ran but reported errors, or warnings
	// under check --strict.
	ExitDiagnostics = 2
)

// ExitError carries the exit code a command wants for its error.
// Use errors.As to extract it from an error chain.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// diagnosticsError reports a pass that finished with failing diagnostics.
func diagnosticsError(err error) error {
	return &ExitError{Code: ExitDiagnostics, Err: err}
}

// ExitCode maps the error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
