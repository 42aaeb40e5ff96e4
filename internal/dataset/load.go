package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LoadOptions selects how Load reads a file.
type LoadOptions struct {
	// Delimiter for CSV. If 0, chosen from the extension.
	Delimiter rune
	// Sheet for XLSX. Empty means the first sheet.
	Sheet string
}

// Load reads a .csv, .tsv or .xlsx file into a Dataset.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return ReadCSVFile(path, opt.Delimiter)
	case ".xlsx":
		return ReadXLSXFile(path, opt.Sheet)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}
