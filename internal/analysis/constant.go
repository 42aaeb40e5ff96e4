package analysis

import (
	"go.uber.org/zap"

	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

// ConstantColumns names the columns holding exactly one distinct non-null
// value. Nulls are not counted as a value, and all-null columns are not constant.
func ConstantColumns(d *dataset.Dataset) []string {
	var out []string
	for _, c := range d.Columns() {
		seen := make(map[string]struct{}, 2)
		for _, v := range c.Values {
			if v.IsNull() {
				continue
			}
			seen[v.Key()] = struct{}{}
			if len(seen) > 1 {
				break
			}
		}
		if len(seen) == 1 {
			out = append(out, c.Name)
		}
	}
	return out
}

// DropConstantColumns returns a copy of d without its constant columns,
// together with their names, and logs each removed column. d itself is left untouched.
func DropConstantColumns(d *dataset.Dataset, logger *zap.Logger) (*dataset.Dataset, []string) {
	if logger == nil {
		logger = zap.NewNop()
	}
	drop := ConstantColumns(d)
	for _, name := range drop {
		logger.Info("dropped single-value column", zap.String("column", name))
	}
	// Names come from d, so Drop cannot miss.
	out, _ := d.Drop(drop...)
	return out, drop
}
