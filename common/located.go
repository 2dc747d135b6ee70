package common

import "github.com/SeppDev/eclipse-sub000/report"

// Located wraps a value with the span of source text it was produced from.
type Located[T any] struct {
	Value T
	Span  *report.TextSpan
}

// NewLocated creates a new located value.
func NewLocated[T any](value T, span *report.TextSpan) Located[T] {
	return Located[T]{Value: value, Span: span}
}
