package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

// SampleStats summarises one group of a two-sample test.
type SampleStats struct {
	N          int     `json:"n"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	SumSquares float64 `json:"sum_squares"`
}

// TTestResult holds a pooled-variance two-sample t-test.
// T is positive when the super group mean exceeds the regular group mean.
type TTestResult struct {
	Column   string      `json:"column"`
	Alpha    float64     `json:"alpha"`
	DF       int         `json:"df"`
	T        float64     `json:"t"`
	Critical float64     `json:"critical"`
	Regular  SampleStats `json:"regular"`
	Super    SampleStats `json:"super"`
}

// Significant reports whether the null hypothesis of equal means is rejected at Alpha.
func (r TTestResult) Significant() bool {
	return math.Abs(r.T) > r.Critical
}

// TwoTailTTest compares the means of column between the regular and super
// groups with a pooled-variance t-test and returns the statistic together
// with the two-tailed critical value at alpha.
func TwoTailTTest(regular, super *dataset.Dataset, column string, alpha float64) (TTestResult, error) {
	if !(alpha > 0 && alpha < 1) {
		return TTestResult{}, &InvalidInputError{Param: "alpha", Reason: fmt.Sprintf("%v is not in (0, 1)", alpha)}
	}
	reg, err := describe(regular, column, "regular")
	if err != nil {
		return TTestResult{}, err
	}
	sup, err := describe(super, column, "super")
	if err != nil {
		return TTestResult{}, err
	}

	df := reg.N + sup.N - 2
	pooled := (reg.SumSquares + sup.SumSquares) / float64(df)
	if math.IsNaN(pooled) || math.IsInf(pooled, 0) || math.IsInf(reg.Mean, 0) || math.IsInf(sup.Mean, 0) {
		return TTestResult{}, &InvalidInputError{Param: column, Reason: "values overflow float64; mean or variance is not finite"}
	}
	if !(pooled > 0) {
		return TTestResult{}, &ZeroVarianceError{Column: column}
	}
	se := math.Sqrt(pooled/float64(reg.N) + pooled/float64(sup.N))
	t := (sup.Mean - reg.Mean) / se

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	crit := -dist.Quantile(alpha / 2)

	return TTestResult{
		Column:   column,
		Alpha:    alpha,
		DF:       df,
		T:        t,
		Critical: crit,
		Regular:  reg,
		Super:    sup,
	}, nil
}

// describe computes n, mean, sample standard deviation and sum of squares
// over the non-null values of column.
func describe(d *dataset.Dataset, column, group string) (SampleStats, error) {
	vals, err := d.Floats(column)
	if err != nil {
		return SampleStats{}, fmt.Errorf("%s group: %w", group, err)
	}
	if len(vals) < 2 {
		return SampleStats{}, &InsufficientSampleError{Group: group, Column: column, N: len(vals), Need: 2}
	}
	mean, err := stats.Mean(vals)
	if err != nil {
		return SampleStats{}, fmt.Errorf("%s group mean: %w", group, err)
	}
	sd, err := stats.StandardDeviationSample(vals)
	if err != nil {
		return SampleStats{}, fmt.Errorf("%s group stdev: %w", group, err)
	}
	variance, err := stats.SampleVariance(vals)
	if err != nil {
		return SampleStats{}, fmt.Errorf("%s group variance: %w", group, err)
	}
	return SampleStats{
		N:          len(vals),
		Mean:       mean,
		StdDev:     sd,
		SumSquares: variance * float64(len(vals)-1),
	}, nil
}
