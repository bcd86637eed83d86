package exit

import (
	"fmt"
	"io"
)

// Stream selects where a result message is written.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// Result holds the message and exit code for program termination.
type Result struct {
	Stream   Stream
	ExitCode int
	Message  string
}

// Print writes the result message to the stream it was created for.
func (r *Result) Print(stdout, stderr io.Writer) {
	w := stdout
	if r.Stream == Stderr {
		w = stderr
	}
	fmt.Fprint(w, r.Message)
}

// Success creates a successful exit result that outputs to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Stream:   Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

// Error creates an error exit result that outputs to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{
		Stream:   Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// FromError reports err on stderr with exit code 1.
func FromError(err error) *Result {
	return Errorf("Error: %v\n", err)
}
