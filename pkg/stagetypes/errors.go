package stagetypes

import "fmt"

// The pipeline has four non-overlapping error kinds, all fatal to the
// current run: I/O errors (wrapped and propagated unchanged), ScanError,
// ParseError, and RuntimeError. Nothing is retried internally.

// ScanError reports a malformed command line: an unknown command keyword,
// or DEFAULT given an argument.
type ScanError struct {
	Line    int
	Command string
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %d] scan error (%s): %s", e.Line, e.Command, e.Message)
}

// ParseError reports a command appearing in a grammar-invalid context,
// or a stage left without a completed transition.
type ParseError struct {
	Line    int
	Command string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] parse error (%s): %s", e.Line, e.Command, e.Message)
}

// RuntimeError reports a failure during interpretation. It carries the
// current stage name; source line numbers are no longer available at this
// phase.
type RuntimeError struct {
	Stage   string
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[stage %s] runtime error: %s", e.Stage, e.Message)
}
