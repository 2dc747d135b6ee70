package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	ErrorColorFG = pterm.FgRed
	WarnColorFG  = pterm.FgYellow
	NoteColorFG  = pterm.FgCyan
	InfoColorFG  = pterm.FgLightGreen

	ErrorStyle = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	WarnStyle  = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	NoteStyle  = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
)

// Flush renders every diagnostic reported since the last flush to w.
// Diagnostics below the reporter's log level are dropped.
func (r *Reporter) Flush(w io.Writer) {
	r.m.Lock()
	defer r.m.Unlock()

	for _, d := range r.diagnostics[r.flushed:] {
		if r.shouldDisplay(d.Severity) {
			io.WriteString(w, r.renderDiagnostic(d))
		}
	}

	r.flushed = len(r.diagnostics)
}

// shouldDisplay returns whether a diagnostic of the given severity should be
// displayed at the reporter's log level.
func (r *Reporter) shouldDisplay(sev Severity) bool {
	switch sev {
	case SeverityError:
		return r.logLevel >= LogLevelError
	case SeverityWarning:
		return r.logLevel >= LogLevelWarn
	default:
		return r.logLevel >= LogLevelVerbose
	}
}

// Render renders a single diagnostic to a string.
func (r *Reporter) Render(d *Diagnostic) string {
	r.m.Lock()
	defer r.m.Unlock()

	return r.renderDiagnostic(d)
}

// renderDiagnostic renders a diagnostic: severity, title, file position, and
// then the source text of every span with carets underneath.
func (r *Reporter) renderDiagnostic(d *Diagnostic) string {
	sb := &strings.Builder{}

	switch d.Severity {
	case SeverityError:
		sb.WriteString(ErrorStyle.Sprint("error"))
	case SeverityWarning:
		sb.WriteString(WarnStyle.Sprint("warning"))
	default:
		sb.WriteString(NoteStyle.Sprint("note"))
	}

	sb.WriteString(": ")
	sb.WriteString(pterm.Bold.Sprint(d.Title))
	sb.WriteRune('\n')

	if d.File != "" {
		sb.WriteString(NoteColorFG.Sprint("  --> "))
		sb.WriteString(d.File)
		if d.Span != nil {
			fmt.Fprintf(sb, ":%d:%d", d.Span.Start.Line, d.Span.Start.Col+1)
		}
		sb.WriteRune('\n')
	}

	if d.Span != nil {
		r.renderSourceText(sb, d.File, d.Span, d.Severity, "")
	}

	for _, label := range d.Secondary {
		if label.Span == nil {
			fmt.Fprintf(sb, "  = %s\n", label.Message)
			continue
		}

		fmt.Fprintf(sb, "  %s %s:%d:%d\n", NoteColorFG.Sprint("-->"), d.File, label.Span.Start.Line, label.Span.Start.Col+1)
		r.renderSourceText(sb, d.File, label.Span, SeverityNote, label.Message)
	}

	sb.WriteRune('\n')
	return sb.String()
}

// renderSourceText writes the lines of source text covered by span with a
// caret underline beneath the selected columns.  Nothing is written if the
// source text is unavailable.
func (r *Reporter) renderSourceText(sb *strings.Builder, file string, span *TextSpan, sev Severity, msg string) {
	if r.lookup == nil {
		return
	}

	src, ok := r.lookup(file)
	if !ok {
		return
	}

	allLines := strings.Split(strings.ReplaceAll(src, "\r", ""), "\n")
	if span.Start.Line < 1 || span.Start.Line > len(allLines) {
		return
	}

	endLine := span.End.Line
	if endLine > len(allLines) {
		endLine = len(allLines)
	}

	if endLine < span.Start.Line {
		endLine = span.Start.Line
	}

	// Spans which end at column zero of a later line end on the line before.
	if endLine > span.Start.Line && span.End.Col == 0 {
		endLine--
	}

	tabs := strings.Repeat(" ", r.tabSize)
	lineNumWidth := len(strconv.Itoa(endLine))
	lineNumFmtStr := "%" + strconv.Itoa(lineNumWidth) + "d | "

	caretColor := ErrorColorFG
	switch sev {
	case SeverityWarning:
		caretColor = WarnColorFG
	case SeverityNote:
		caretColor = NoteColorFG
	}

	for ln := span.Start.Line; ln <= endLine; ln++ {
		line := strings.ReplaceAll(allLines[ln-1], "\t", tabs)

		sb.WriteString(NoteColorFG.Sprintf(lineNumFmtStr, ln))
		sb.WriteString(line)
		sb.WriteRune('\n')

		// Calculate the columns to underline on this line.  Every line but the
		// first starts underlining at the first column and every line but the
		// last underlines to the end of the line.
		startCol := 0
		if ln == span.Start.Line {
			startCol = span.Start.Col
		}

		endCol := len(line)
		if ln == span.End.Line {
			endCol = span.End.Col
		}

		if startCol > len(line) {
			startCol = len(line)
		}

		if endCol <= startCol {
			endCol = startCol + 1
		}

		sb.WriteString(strings.Repeat(" ", lineNumWidth))
		sb.WriteString(NoteColorFG.Sprint(" | "))
		sb.WriteString(strings.Repeat(" ", startCol))
		sb.WriteString(caretColor.Sprint(strings.Repeat("^", endCol-startCol)))

		if ln == endLine && msg != "" {
			sb.WriteRune(' ')
			sb.WriteString(caretColor.Sprint(msg))
		}

		sb.WriteRune('\n')
	}
}

// -----------------------------------------------------------------------------

// Summarize writes the concluding message of a compilation: whether it
// succeeded and how many errors and warnings were reported.  Nothing is
// written at the silent log level.
func (r *Reporter) Summarize(w io.Writer) {
	if r.LogLevel() == LogLevelSilent {
		return
	}

	errorCount, warningCount := r.ErrorCount(), r.WarningCount()

	sb := &strings.Builder{}
	if errorCount == 0 {
		sb.WriteString(InfoColorFG.Sprint("All done! "))
	} else {
		sb.WriteString(ErrorColorFG.Sprint("Oh no! "))
	}

	sb.WriteRune('(')
	writeCount(sb, errorCount, "error", ErrorColorFG)
	sb.WriteString(", ")
	writeCount(sb, warningCount, "warning", WarnColorFG)
	sb.WriteString(")\n")

	io.WriteString(w, sb.String())
}

// writeCount writes a colored count of a kind of diagnostic.
func writeCount(sb *strings.Builder, count int, noun string, color pterm.Color) {
	if count == 0 {
		color = InfoColorFG
	}

	sb.WriteString(color.Sprint(count))
	sb.WriteRune(' ')
	sb.WriteString(noun)

	if count != 1 {
		sb.WriteRune('s')
	}
}
