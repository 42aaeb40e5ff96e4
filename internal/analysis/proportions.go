package analysis

import (
	"sort"

	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

// Proportion is the share of non-null rows holding one distinct value.
type Proportion struct {
	Value dataset.Value `json:"value"`
	Count int           `json:"count"`
	Share float64       `json:"share"`
}

// ValueProportions returns every distinct non-null value of column with its
// share of the non-null rows, ordered by ascending share.
func ValueProportions(d *dataset.Dataset, column string) ([]Proportion, error) {
	col, err := d.Column(column)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]*Proportion)
	nonNull := 0
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		nonNull++
		k := v.Key()
		p, ok := counts[k]
		if !ok {
			p = &Proportion{Value: v}
			counts[k] = p
		}
		p.Count++
	}
	if nonNull == 0 {
		return nil, &EmptyColumnError{Column: column}
	}

	out := make([]Proportion, 0, len(counts))
	for _, p := range counts {
		p.Share = float64(p.Count) / float64(nonNull)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value.Key() < out[j].Value.Key()
		}
		return out[i].Count < out[j].Count
	})
	return out, nil
}
