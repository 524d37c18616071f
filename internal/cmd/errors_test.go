package cmd

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"plain error", errors.New("config: missing root directory"), ExitFailure},
		{"diagnostics", diagnosticsError(errors.New("3 error(s) during generation")), ExitDiagnostics},
		{"wrapped", fmt.Errorf("watch pass: %w", diagnosticsError(errors.New("check failed"))), ExitDiagnostics},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDiagnosticsError_KeepsMessageAndCause(t *testing.T) {
	// given
	inner := errors.New("2 error(s) during generation")

	// when
	err := diagnosticsError(inner)

	// then
	if err.Error() != inner.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), inner.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the cause")
	}
}

const brokenInterface = `package app

//msgtrans:bundle
type Broken interface {
	Missing() string
}
`

func TestExitCode_Commands(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		args  []string
		want  int
	}{
		{"clean generate", nil, []string{"generate"}, ExitOK},
		{"generate with an invalid interface", map[string]string{"app/broken.go": brokenInterface}, []string{"generate"}, ExitDiagnostics},
		{"lenient check with an orphan key", map[string]string{"app/Messages.i18n_fr.properties": "stale=x\n"}, []string{"check"}, ExitOK},
		{"strict check with an orphan key", map[string]string{"app/Messages.i18n_fr.properties": "stale=x\n"}, []string{"check", "--strict"}, ExitDiagnostics},
		{"negative workers", nil, []string{"check", "--workers=-1"}, ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			root := writeFixture(t, tt.files)

			// when
			_, err := execute(t, append(tt.args, root)...)

			// then
			if got := ExitCode(err); got != tt.want {
				t.Errorf("exit code = %d (err %v), want %d", got, err, tt.want)
			}
		})
	}
}
