package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadCSV reads a delimited table with a header row. If delim is 0 a comma is used.
func ReadCSV(r io.Reader, delim rune) (*Dataset, error) {
	if delim == 0 {
		delim = ','
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New()
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return fromRecords(header, records)
}

// ReadCSVFile opens path and reads it with ReadCSV. A zero delim is sniffed from the extension.
func ReadCSVFile(path string, delim rune) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	d, err := ReadCSV(f, delim)
	if err != nil {
		return nil, err
	}
	d.Name = filepath.Base(path)
	return d, nil
}

// WriteCSV writes the dataset with a header row; nulls become empty cells.
func (d *Dataset) WriteCSV(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(d.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(d.cols))
	for r := 0; r < d.rows; r++ {
		for i, c := range d.cols {
			row[i] = c.Values[r].String()
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// fromRecords builds a dataset from a header and raw rows. Short rows are padded with nulls.
func fromRecords(header []string, records [][]string) (*Dataset, error) {
	cols := make([]Column, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		cols[i] = Column{Name: name, Values: make([]Value, len(records))}
	}
	for r, rec := range records {
		for i := range cols {
			if i < len(rec) {
				cols[i].Values[r] = Infer(rec[i])
			}
		}
	}
	return New(cols...)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
