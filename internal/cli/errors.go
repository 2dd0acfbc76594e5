package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// PreflightError is a user-facing error with a suggested fix.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
	Err      error
}

func (e *PreflightError) Error() string {
	return e.Message
}

func (e *PreflightError) Unwrap() error {
	return e.Err
}

func printError(out io.Writer, err error) {
	var preflight *PreflightError
	if errors.As(err, &preflight) {
		fmt.Fprintf(out, "%s %s\n", colorize("Error:", colorRed), preflight.Message)
		if hint := strings.TrimSpace(preflight.Hint); hint != "" {
			fmt.Fprintf(out, "  Hint: %s\n", hint)
		}
		if next := strings.TrimSpace(preflight.NextStep); next != "" {
			fmt.Fprintf(out, "  Try:  %s\n", next)
		}
		return
	}
	fmt.Fprintf(out, "%s %v\n", colorize("Error:", colorRed), err)
}
