package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

// DefaultOutlierThreshold is the robust z-score above which a value counts as an outlier.
const DefaultOutlierThreshold = 3.5

// madScale turns a MAD into a normal-consistent robust z-score.
const madScale = 0.6745

// GroupSummary describes one group's values of a numeric column.
type GroupSummary struct {
	Group  string  `json:"group"`
	N      int     `json:"n"`
	Nulls  int     `json:"nulls"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	MAD    float64 `json:"mad"`
	// Outliers counts values with robust |z| above Threshold. Zero when MAD is zero.
	Outliers  int     `json:"outliers"`
	MaxAbsZ   float64 `json:"max_abs_z"`
	Threshold float64 `json:"threshold"`
}

// Comparison holds the side-by-side summaries of a column.
type Comparison struct {
	Column  string       `json:"column"`
	Regular GroupSummary `json:"regular"`
	Super   GroupSummary `json:"super"`
}

// Compare summarises column for both groups. A threshold <= 0 selects
// DefaultOutlierThreshold.
func Compare(regular, super *dataset.Dataset, column string, threshold float64) (Comparison, error) {
	if threshold <= 0 {
		threshold = DefaultOutlierThreshold
	}
	reg, err := summarize(regular, column, "regular", threshold)
	if err != nil {
		return Comparison{}, err
	}
	sup, err := summarize(super, column, "super", threshold)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Column: column, Regular: reg, Super: sup}, nil
}

func summarize(d *dataset.Dataset, column, group string, threshold float64) (GroupSummary, error) {
	vals, err := d.Floats(column)
	if err != nil {
		return GroupSummary{}, fmt.Errorf("%s group: %w", group, err)
	}
	if len(vals) == 0 {
		return GroupSummary{}, &InsufficientSampleError{Group: group, Column: column, N: 0, Need: 1}
	}
	nulls, _ := d.NullCount(column)
	s := GroupSummary{Group: group, N: len(vals), Nulls: nulls, Threshold: threshold}

	s.Mean, _ = stats.Mean(vals)
	if len(vals) > 1 {
		s.StdDev, _ = stats.StandardDeviationSample(vals)
	}
	s.Min, _ = stats.Min(vals)
	s.Max, _ = stats.Max(vals)
	q := Quantiles(vals, 0.25, 0.5, 0.75)
	s.Q1, s.Median, s.Q3 = q[0], q[1], q[2]
	if s.MAD, err = stats.MedianAbsoluteDeviation(vals); err != nil {
		return GroupSummary{}, fmt.Errorf("%s group mad: %w", group, err)
	}
	if s.MAD > 0 {
		for _, v := range vals {
			z := math.Abs(madScale * (v - s.Median) / s.MAD)
			if z > threshold {
				s.Outliers++
			}
			if z > s.MaxAbsZ {
				s.MaxAbsZ = z
			}
		}
	}
	return s, nil
}
