package report

import (
	"fmt"
	"sync"
)

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelNames maps command-line log level names to log levels.
var LogLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// Severity is the severity of a diagnostic.
type Severity int

// Enumeration of diagnostic severities.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// Label is a secondary span attached to a diagnostic.
type Label struct {
	Span    *TextSpan
	Message string
}

// Diagnostic is a single message produced during compilation.
type Diagnostic struct {
	Severity Severity

	// The one-line title of the diagnostic.
	Title string

	// The display path of the file the diagnostic occurred in.  This may be
	// empty for diagnostics which are not associated with a file.
	File string

	// The primary span of the diagnostic.  This may be nil.
	Span *TextSpan

	// Additional spans displayed beneath the primary span.
	Secondary []Label
}

// SourceLookup returns the source text of a file by its display path.
type SourceLookup func(file string) (string, bool)

// Reporter collects the diagnostics produced by all the stages of the
// compiler.  Diagnostics are stored in the order they are reported and only
// rendered when the reporter is flushed: reporting is deferred.  The reporter
// is append-only and synchronized.
type Reporter struct {
	// The mutex used to synchonize different reporting method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels above.
	logLevel int

	// The diagnostics reported so far.
	diagnostics []*Diagnostic

	// The index of the first diagnostic that has not been flushed.
	flushed int

	// The number of error diagnostics.
	errorCount int

	// The number of warning diagnostics.
	warningCount int

	// Used to retrieve source text when rendering diagnostics.
	lookup SourceLookup

	// The number of columns a tab occupies when displaying source text.
	tabSize int
}

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		tabSize:  4,
	}
}

// SetSourceLookup sets the function used to fetch source text for display.
func (r *Reporter) SetSourceLookup(lookup SourceLookup, tabSize int) {
	r.m.Lock()
	defer r.m.Unlock()

	r.lookup = lookup
	r.tabSize = tabSize
}

// LogLevel returns the log level of the reporter.
func (r *Reporter) LogLevel() int {
	return r.logLevel
}

// Report records a diagnostic.
func (r *Reporter) Report(d *Diagnostic) {
	r.m.Lock()
	defer r.m.Unlock()

	switch d.Severity {
	case SeverityError:
		r.errorCount++
	case SeverityWarning:
		r.warningCount++
	}

	r.diagnostics = append(r.diagnostics, d)
}

// Error reports a compilation error in the given file.  The span may be nil in
// which case no position information will be displayed.
func (r *Reporter) Error(file string, span *TextSpan, msg string, args ...interface{}) {
	r.Report(&Diagnostic{
		Severity: SeverityError,
		Title:    fmt.Sprintf(msg, args...),
		File:     file,
		Span:     span,
	})
}

// Warn reports a compilation warning.  The arguments are of the same form as
// those to Error.
func (r *Reporter) Warn(file string, span *TextSpan, msg string, args ...interface{}) {
	r.Report(&Diagnostic{
		Severity: SeverityWarning,
		Title:    fmt.Sprintf(msg, args...),
		File:     file,
		Span:     span,
	})
}

// StdError reports a standard Go error as a compilation error in a file.
func (r *Reporter) StdError(file string, err error) {
	r.Report(&Diagnostic{
		Severity: SeverityError,
		Title:    err.Error(),
		File:     file,
	})
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were reported.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount > 0
}

// ErrorCount returns the number of errors reported.
func (r *Reporter) ErrorCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount
}

// WarningCount returns the number of warnings reported.
func (r *Reporter) WarningCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return r.warningCount
}

// Diagnostics returns a copy of all the diagnostics reported so far.
func (r *Reporter) Diagnostics() []*Diagnostic {
	r.m.Lock()
	defer r.m.Unlock()

	return append([]*Diagnostic(nil), r.diagnostics...)
}

// -----------------------------------------------------------------------------

// CatchErrors catches any errors thrown by a `panic` during a stage of
// compilation.  In effect, this handler determines when any errors
// "unrecoverable" within a given subsection of the compiler should stop
// bubbling.  Internal compiler errors are re-raised.
// NB: This function must ALWAYS be deferred.
func (r *Reporter) CatchErrors(file string) {
	if x := recover(); x != nil {
		switch v := x.(type) {
		case *LocalCompileError:
			r.Report(&Diagnostic{
				Severity:  SeverityError,
				Title:     v.Message,
				File:      file,
				Span:      v.Span,
				Secondary: v.Secondary,
			})
		case *ICE:
			panic(v)
		case error:
			r.StdError(file, v)
		default:
			panic(x)
		}
	}
}
