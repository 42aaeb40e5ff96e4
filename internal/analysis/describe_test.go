package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/hostcompare/internal/dataset"
)

func TestCompare(t *testing.T) {
	regular := mustDataset(t, dataset.Column{Name: "price", Values: append(nums(1, 2, 3, 4, 100), dataset.Null())})
	super := mustDataset(t, dataset.Column{Name: "price", Values: nums(10, 10, 10)})

	cmp, err := Compare(regular, super, "price", 0)
	require.NoError(t, err)
	assert.Equal(t, "price", cmp.Column)

	r := cmp.Regular
	assert.Equal(t, 5, r.N)
	assert.Equal(t, 1, r.Nulls)
	assert.InDelta(t, 22.0, r.Mean, 1e-12)
	assert.Equal(t, 1.0, r.Min)
	assert.Equal(t, 100.0, r.Max)
	assert.Equal(t, 2.0, r.Q1)
	assert.Equal(t, 3.0, r.Median)
	assert.Equal(t, 4.0, r.Q3)
	assert.Equal(t, 1.0, r.MAD)
	assert.Equal(t, DefaultOutlierThreshold, r.Threshold)
	assert.Equal(t, 1, r.Outliers)
	assert.InDelta(t, 0.6745*97, r.MaxAbsZ, 1e-9)

	s := cmp.Super
	assert.Equal(t, 3, s.N)
	assert.Zero(t, s.StdDev)
	assert.Zero(t, s.MAD)
	assert.Zero(t, s.Outliers)

	md := cmp.Markdown()
	assert.Contains(t, md, "[SUMMARY]")
	assert.Contains(t, md, "| Regular hosts | 5 | 1 |")
	assert.Contains(t, md, "- Superhosts: MAD is zero")
	assert.Contains(t, md, "- Regular hosts: 1 above |z|>3.5")
}

func TestCompare_Threshold(t *testing.T) {
	regular := mustDataset(t, dataset.Column{Name: "x", Values: nums(1, 2, 3, 4, 100)})
	super := mustDataset(t, dataset.Column{Name: "x", Values: nums(1, 2, 3)})
	cmp, err := Compare(regular, super, "x", 100)
	require.NoError(t, err)
	assert.Zero(t, cmp.Regular.Outliers)
	assert.Equal(t, 100.0, cmp.Regular.Threshold)
}

func TestCompare_Errors(t *testing.T) {
	ok := mustDataset(t, dataset.Column{Name: "x", Values: nums(1, 2)})
	empty := mustDataset(t, dataset.Column{Name: "x", Values: []dataset.Value{dataset.Null()}})

	_, err := Compare(ok, empty, "x", 0)
	var small *InsufficientSampleError
	require.True(t, errors.As(err, &small))
	assert.Equal(t, "super", small.Group)

	_, err = Compare(ok, ok, "y", 0)
	var nf *dataset.ColumnNotFoundError
	assert.True(t, errors.As(err, &nf))
}
