package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

var priceStripper = strings.NewReplacer("$", "", ",", "")

// ParsePrice parses a currency string such as "$1,234.50" into dollars.
func ParsePrice(s string) (float64, bool) {
	return parseFloat(priceStripper.Replace(s))
}

// ParsePercent parses a percentage string such as "25%" into a fraction (0.25).
func ParsePercent(s string) (float64, bool) {
	f, ok := parseFloat(strings.ReplaceAll(s, "%", ""))
	if !ok {
		return 0, false
	}
	return f / 100, true
}

// CleanPrice converts a currency string cell to a number. Anything that does
// not parse, including cells that are already numeric, is returned unchanged.
func CleanPrice(v dataset.Value) dataset.Value {
	s, ok := v.Text()
	if !ok {
		return v
	}
	if f, ok := ParsePrice(s); ok {
		return dataset.Num(f)
	}
	return v
}

// CleanPercent converts a percentage string cell to a fraction of one.
// Values above 100% are kept as is (1.5 for "150%"). Unparseable cells pass through.
func CleanPercent(v dataset.Value) dataset.Value {
	s, ok := v.Text()
	if !ok {
		return v
	}
	if f, ok := ParsePercent(s); ok {
		return dataset.Num(f)
	}
	return v
}

// CleanColumns applies fn to each named column and returns the new dataset.
func CleanColumns(d *dataset.Dataset, fn func(dataset.Value) dataset.Value, columns ...string) (*dataset.Dataset, error) {
	out := d
	for _, c := range columns {
		next, err := out.Apply(c, fn)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
