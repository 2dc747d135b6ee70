package common

import "github.com/SeppDev/eclipse-sub000/report"

// DefaultTabSize is the number of columns a tab advances the column count by
// when no project configuration overrides it.
const DefaultTabSize = 4

// CompileContext is the state shared by all the stages of one compilation:
// the reporter every diagnostic is sent to and the counter generating every
// unique name.  It is owned by the driver and passed by pointer to each stage.
type CompileContext struct {
	// The reporter all diagnostics are sent to.
	Reporter *report.Reporter

	// The counter used to generate codegen keys, variable keys, and labels.
	Names *NameCounter

	// The number of columns a tab occupies.
	TabSize int
}

// NewCompileContext creates a new compile context with the given reporter.
func NewCompileContext(rep *report.Reporter, tabSize int) *CompileContext {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}

	return &CompileContext{
		Reporter: rep,
		Names:    &NameCounter{},
		TabSize:  tabSize,
	}
}
