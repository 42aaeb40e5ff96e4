package dataset

import (
	"errors"
	"fmt"
)

// ErrRaggedColumns indicates columns of unequal length were passed to New.
var ErrRaggedColumns = errors.New("columns have unequal length")

// ColumnNotFoundError is returned when a column selector does not name a column of the dataset.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// DuplicateColumnError is returned when two columns share a name.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Column)
}

// NotNumericError is returned when a numeric operation meets a string cell.
type NotNumericError struct {
	Column string
	Row    int
	Value  string
}

func (e *NotNumericError) Error() string {
	return fmt.Sprintf("column %q row %d: non-numeric value %q", e.Column, e.Row, e.Value)
}
