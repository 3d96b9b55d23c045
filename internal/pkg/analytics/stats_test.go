package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanMedianMode(t *testing.T) {
	values := []float64{1, 2, 2, 3, 10}

	require.NotNil(t, Mean(values))
	assert.Equal(t, 3.6, *Mean(values))
	assert.Equal(t, 2.0, *Median(values))
	assert.Equal(t, 2.0, *Mode(values))

	// even-length median averages the middle pair
	assert.Equal(t, 2.5, *Median([]float64{1, 2, 3, 4}))

	// mode ties resolve to the smallest value
	assert.Equal(t, 1.0, *Mode([]float64{2, 1, 2, 1}))
}

func TestStats_DegenerateInputs(t *testing.T) {
	assert.Nil(t, Mean(nil))
	assert.Nil(t, Median(nil))
	assert.Nil(t, Mode(nil))

	// stddev needs two points, skewness three
	assert.Nil(t, StdDev([]float64{5}))
	assert.Nil(t, Skewness([]float64{5, 6}))

	// constant series has no spread to normalize by
	assert.Nil(t, Skewness([]float64{4, 4, 4}))

	// zero mean makes the coefficient of variation undefined
	assert.Nil(t, CoefficientOfVariation([]float64{-1, 1}))
}

func TestStdDev(t *testing.T) {
	sd := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NotNil(t, sd)
	assert.InDelta(t, 2.138, *sd, 0.001)
}

func TestSkewness_Direction(t *testing.T) {
	rightSkewed := Skewness([]float64{1, 2, 2, 3, 3, 4, 20})
	require.NotNil(t, rightSkewed)
	assert.Greater(t, *rightSkewed, 0.0)

	leftSkewed := Skewness([]float64{-20, 1, 2, 2, 3, 3, 4})
	require.NotNil(t, leftSkewed)
	assert.Less(t, *leftSkewed, 0.0)
}

func TestLinearFit(t *testing.T) {
	slope, intercept := linearFit([]float64{1, 2}, []float64{100, 150})
	assert.InDelta(t, 50, slope, 1e-9)
	assert.InDelta(t, 50, intercept, 1e-9)
}

func TestPearson(t *testing.T) {
	r, ok := pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.True(t, ok)
	assert.InDelta(t, 1, r, 1e-9)

	_, ok = pearson([]float64{1, 1, 1}, []float64{2, 4, 6})
	assert.False(t, ok)
}

func TestTwoTailedPValue(t *testing.T) {
	// no correlation carries no evidence
	assert.InDelta(t, 1, twoTailedPValue(0, 10), 1e-9)

	// strong correlation over a decent sample is significant
	assert.Less(t, twoTailedPValue(0.95, 10), 0.05)

	// the same r over a tiny sample is not
	assert.Greater(t, twoTailedPValue(0.9, 3), 0.05)
}

func TestIncompleteBeta_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, incompleteBeta(2, 0.5, 0))
	assert.Equal(t, 1.0, incompleteBeta(2, 0.5, 1))

	// I_x(a,b) is a CDF in x
	assert.Less(t, incompleteBeta(2, 3, 0.2), incompleteBeta(2, 3, 0.8))
}
