package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_Empty(t *testing.T) {
	s := NewSample()

	assert.Zero(t, s.Len())
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdDev())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.5))
	assert.Zero(t, s.Min())
	assert.Zero(t, s.Max())
	assert.Nil(t, s.Histogram(10))

	low, high := s.ConfidenceInterval(0.95)
	assert.Zero(t, low)
	assert.Zero(t, high)
	assert.Equal(t, 1.0, s.OneSidedTest(0).P)
}

func TestSample_SingleValue(t *testing.T) {
	s := NewSample(2.5)

	assert.Equal(t, 2.5, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Equal(t, 2.5, s.Median())

	low, high := s.ConfidenceInterval(0.95)
	assert.Equal(t, 2.5, low)
	assert.Equal(t, 2.5, high)
}

func TestSample_KnownValues(t *testing.T) {
	s := NewSample(1, 2, 3, 4, 5)

	assert.Equal(t, 5, s.Len())
	assert.InDelta(t, 3.0, s.Mean(), 1e-12)
	assert.InDelta(t, 2.5, s.Variance(), 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), s.StdDev(), 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), s.StdError(), 1e-12)
	assert.Equal(t, 3.0, s.Median())
	assert.Equal(t, 1.0, s.Min())
	assert.Equal(t, 5.0, s.Max())
}

func TestSample_ConfidenceInterval(t *testing.T) {
	s := NewSample(1, 2, 3, 4, 5)

	// t(0.975, df=4) = 2.776445
	low, high := s.ConfidenceInterval(0.95)
	assert.InDelta(t, 3-2.776445*math.Sqrt(0.5), low, 1e-5)
	assert.InDelta(t, 3+2.776445*math.Sqrt(0.5), high, 1e-5)

	narrow, _ := s.ConfidenceInterval(0.80)
	assert.Greater(t, narrow, low, "lower confidence gives a narrower interval")

	fallbackLow, fallbackHigh := s.ConfidenceInterval(1.5)
	assert.Equal(t, low, fallbackLow)
	assert.Equal(t, high, fallbackHigh)
}

func TestSample_OneSidedTest(t *testing.T) {
	s := NewSample(1, 2, 3, 4, 5)

	res := s.OneSidedTest(0)
	assert.Equal(t, 4, res.DF)
	assert.InDelta(t, 3/math.Sqrt(0.5), res.T, 1e-12)
	assert.Less(t, res.P, 0.01)
	assert.Greater(t, res.P, 0.001)
	assert.True(t, res.Significant(0.05))

	res = s.OneSidedTest(3)
	assert.Zero(t, res.T)
	assert.InDelta(t, 0.5, res.P, 1e-12)

	res = s.OneSidedTest(10)
	assert.Greater(t, res.P, 0.99)
	assert.False(t, res.Significant(0.05))
}

func TestSample_OneSidedTestConstant(t *testing.T) {
	tests := []struct {
		name string
		mu0  float64
		p    float64
	}{
		{"above", 0, 0},
		{"below", 5, 1},
		{"equal", 2, 0.5},
	}

	s := NewSample(2, 2, 2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.p, s.OneSidedTest(tt.mu0).P)
		})
	}
}

func TestSample_Percentile(t *testing.T) {
	s := NewSample(5, 1, 4, 2, 3)

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{0.875, 4.5},
		{1, 5},
		{-1, 1},
		{2, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, s.Percentile(tt.p), 1e-12, "p=%v", tt.p)
	}

	assert.Equal(t, []float64{5, 1, 4, 2, 3}, s.Values(), "percentile must not reorder")
}

func TestSample_MedianEven(t *testing.T) {
	assert.Equal(t, 2.5, NewSample(4, 1, 3, 2).Median())
}

func TestSample_Histogram(t *testing.T) {
	s := NewSample(1, 2, 3, 4, 5)

	buckets := s.Histogram(2)
	require.Len(t, buckets, 2)
	assert.Equal(t, Bucket{Lo: 1, Hi: 3, Count: 2}, buckets[0])
	assert.Equal(t, Bucket{Lo: 3, Hi: 5, Count: 3}, buckets[1])

	total := 0
	for _, b := range s.Histogram(7) {
		total += b.Count
	}
	assert.Equal(t, 5, total)
}

func TestSample_HistogramConstant(t *testing.T) {
	buckets := NewSample(-1, -1, -1).Histogram(5)
	require.Len(t, buckets, 1)
	assert.Equal(t, Bucket{Lo: -1, Hi: -1, Count: 3}, buckets[0])
}

func TestSample_Summarize(t *testing.T) {
	s := NewSample(-10, -5, 0, 5, 10, 20)

	sum := s.Summarize(0)
	assert.Equal(t, 6, sum.Sessions)
	assert.Equal(t, DefaultLevel, sum.Level)
	assert.InDelta(t, s.Mean(), sum.Mean, 1e-12)
	assert.Equal(t, -10.0, sum.Min)
	assert.Equal(t, 20.0, sum.Max)
	assert.Less(t, sum.CILow, sum.Mean)
	assert.Greater(t, sum.CIHigh, sum.Mean)
	assert.Equal(t, s.OneSidedTest(0), sum.Test)
}

func TestSample_Validate(t *testing.T) {
	s := NewSample(1, 2)
	assert.NoError(t, s.Validate())

	s.Add(math.NaN())
	assert.Error(t, s.Validate())
}
