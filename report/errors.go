package report

import "fmt"

// LocalCompileError is a compilation error that occurs in a context in which
// the file is known by the error handler and thus doesn't need to be passed
// along with the error.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan

	// Additional labelled spans displayed beneath the primary span.
	Secondary []Label
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new local compile error.  It is meant to be thrown with
// `panic` and caught by a deferred call to `CatchErrors`.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// WithLabel attaches a secondary labelled span to the error.
func (lce *LocalCompileError) WithLabel(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	lce.Secondary = append(lce.Secondary, Label{Span: span, Message: fmt.Sprintf(msg, args...)})
	return lce
}

// -----------------------------------------------------------------------------

// ICE is an internal compiler error: a bug or unexpected condition in the
// compiler itself.  These are never caught by `CatchErrors`.
type ICE struct {
	Message string
}

func (ice *ICE) Error() string {
	return "internal compiler error: " + ice.Message
}

// ReportICE panics with an internal compiler error.
func ReportICE(msg string, args ...interface{}) {
	panic(&ICE{Message: fmt.Sprintf(msg, args...)})
}
