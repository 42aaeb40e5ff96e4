package dataset

import (
	"fmt"
	"math"
)

// Column is a named sequence of cells.
type Column struct {
	Name   string
	Values []Value
}

// Dataset is an ordered set of equal-length columns. A Dataset is never
// modified after construction; every shaping method returns a new one.
type Dataset struct {
	Name  string
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a dataset from columns. Column slices are copied.
func New(cols ...Column) (*Dataset, error) {
	d := &Dataset{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := d.index[c.Name]; dup {
			return nil, &DuplicateColumnError{Column: c.Name}
		}
		if i == 0 {
			d.rows = len(c.Values)
		} else if len(c.Values) != d.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d: %w", c.Name, len(c.Values), d.rows, ErrRaggedColumns)
		}
		vals := make([]Value, len(c.Values))
		copy(vals, c.Values)
		d.index[c.Name] = len(d.cols)
		d.cols = append(d.cols, Column{Name: c.Name, Values: vals})
	}
	return d, nil
}

// Rows returns the row count.
func (d *Dataset) Rows() int { return d.rows }

// Names returns column names in order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether the dataset contains the named column.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns a copy of the named column.
func (d *Dataset) Column(name string) (Column, error) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, &ColumnNotFoundError{Column: name}
	}
	vals := make([]Value, d.rows)
	copy(vals, d.cols[i].Values)
	return Column{Name: name, Values: vals}, nil
}

// Columns returns copies of all columns in order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.cols))
	for i, c := range d.cols {
		vals := make([]Value, len(c.Values))
		copy(vals, c.Values)
		out[i] = Column{Name: c.Name, Values: vals}
	}
	return out
}

// NullCount returns the number of null cells in the named column.
func (d *Dataset) NullCount(name string) (int, error) {
	i, ok := d.index[name]
	if !ok {
		return 0, &ColumnNotFoundError{Column: name}
	}
	n := 0
	for _, v := range d.cols[i].Values {
		if v.IsNull() {
			n++
		}
	}
	return n, nil
}

// Floats returns the non-null numeric cells of the named column.
// A string or non-finite cell yields NotNumericError.
func (d *Dataset) Floats(name string) ([]float64, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name}
	}
	out := make([]float64, 0, d.rows)
	for r, v := range d.cols[i].Values {
		switch v.Kind() {
		case KindNull:
			continue
		case KindString:
			return nil, &NotNumericError{Column: name, Row: r, Value: v.String()}
		default:
			f, _ := v.Float()
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, &NotNumericError{Column: name, Row: r, Value: v.String()}
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// Drop returns a new dataset without the named columns.
func (d *Dataset) Drop(names ...string) (*Dataset, error) {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		if !d.Has(n) {
			return nil, &ColumnNotFoundError{Column: n}
		}
		skip[n] = true
	}
	kept := make([]Column, 0, len(d.cols))
	for _, c := range d.cols {
		if !skip[c.Name] {
			kept = append(kept, c)
		}
	}
	return d.derive(kept)
}

// Apply returns a new dataset with fn applied to every cell of the named column.
func (d *Dataset) Apply(name string, fn func(Value) Value) (*Dataset, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name}
	}
	cols := make([]Column, len(d.cols))
	copy(cols, d.cols)
	vals := make([]Value, d.rows)
	for r, v := range d.cols[i].Values {
		vals[r] = fn(v)
	}
	cols[i] = Column{Name: name, Values: vals}
	return d.derive(cols)
}

// Filter returns a new dataset holding the rows for which keep returns true.
func (d *Dataset) Filter(keep func(row int) bool) *Dataset {
	var rows []int
	for r := 0; r < d.rows; r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return d.take(rows)
}

// Partition splits rows on a flag column: rows whose flag equals superValue
// go to super, other non-null flags go to regular, null flags are dropped.
// The flag is compared on its written form, so "t", "1" and "true" all work.
func (d *Dataset) Partition(flag, superValue string) (regular, super *Dataset, err error) {
	i, ok := d.index[flag]
	if !ok {
		return nil, nil, &ColumnNotFoundError{Column: flag}
	}
	var regRows, supRows []int
	for r, v := range d.cols[i].Values {
		switch {
		case v.IsNull():
		case v.String() == superValue:
			supRows = append(supRows, r)
		default:
			regRows = append(regRows, r)
		}
	}
	return d.take(regRows), d.take(supRows), nil
}

func (d *Dataset) take(rows []int) *Dataset {
	out := &Dataset{Name: d.Name, index: make(map[string]int, len(d.cols)), rows: len(rows)}
	for ci, c := range d.cols {
		vals := make([]Value, len(rows))
		for j, r := range rows {
			vals[j] = c.Values[r]
		}
		out.index[c.Name] = ci
		out.cols = append(out.cols, Column{Name: c.Name, Values: vals})
	}
	return out
}

func (d *Dataset) derive(cols []Column) (*Dataset, error) {
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		out.rows = d.rows
	}
	out.Name = d.Name
	return out, nil
}
