package analysis

import "fmt"

// EmptyColumnError is returned when a column has no non-null values to compute over.
type EmptyColumnError struct {
	Column string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("column %q has no non-null values", e.Column)
}

// InsufficientSampleError is returned when a group has fewer than Need values.
type InsufficientSampleError struct {
	Group  string
	Column string
	N      int
	Need   int
}

func (e *InsufficientSampleError) Error() string {
	return fmt.Sprintf("%s group has %d value(s) in column %q, need at least %d", e.Group, e.N, e.Column, e.Need)
}

// ZeroVarianceError is returned when the pooled variance of both groups is zero.
type ZeroVarianceError struct {
	Column string
}

func (e *ZeroVarianceError) Error() string {
	return fmt.Sprintf("column %q has zero pooled variance", e.Column)
}

// InvalidInputError reports a parameter outside its legal range.
type InvalidInputError struct {
	Param  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}
