package report

import "fmt"

// TextPosition is a single position in source text.  Lines start at 1 and
// columns at 0.  The offset is the number of characters (not bytes) that come
// before the position in the source text.
type TextPosition struct {
	Line, Col, Offset int
}

// TextSpan represents a range or "span" of source text.  The start position is
// the position of the first character in the span and the end position is one
// past the last character in the span.
type TextSpan struct {
	Start, End TextPosition
}

// NewSpan creates a new span between two positions.
func NewSpan(start, end TextPosition) *TextSpan {
	return &TextSpan{Start: start, End: end}
}

// SpanOver returns a new text span which spans over and between the two given
// text spans.
func SpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		Start: start.Start,
		End:   end.End,
	}
}

// Contains returns whether the other span lies entirely within this span.
func (s *TextSpan) Contains(other *TextSpan) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

func (s *TextSpan) String() string {
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Col+1)
}
