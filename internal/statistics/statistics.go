package statistics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultLevel is the confidence level used when none is given.
const DefaultLevel = 0.95

// Sample holds per-session bankroll deltas.
type Sample struct {
	values []float64
}

// NewSample creates a sample from the given values.
func NewSample(values ...float64) *Sample {
	s := &Sample{values: make([]float64, 0, len(values))}
	s.values = append(s.values, values...)
	return s
}

// Add incorporates a new session result into the sample
func (s *Sample) Add(v float64) {
	s.values = append(s.values, v)
}

// Len returns the number of observations.
func (s *Sample) Len() int {
	return len(s.values)
}

// Values returns a copy of the observations in insertion order.
func (s *Sample) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Mean returns the arithmetic mean of all results
func (s *Sample) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return stat.Mean(s.values, nil)
}

// Variance returns the sample variance of all results
func (s *Sample) Variance() float64 {
	if len(s.values) < 2 {
		return 0
	}
	return stat.Variance(s.values, nil)
}

// StdDev returns the sample standard deviation of all results
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(len(s.values)))
}

// ConfidenceInterval returns the two-sided Student-t interval for the mean
// at the given level. A level outside (0, 1) falls back to DefaultLevel.
// With fewer than two observations the interval collapses to the mean.
func (s *Sample) ConfidenceInterval(level float64) (float64, float64) {
	mean := s.Mean()
	n := len(s.values)
	if n < 2 {
		return mean, mean
	}
	if level <= 0 || level >= 1 {
		level = DefaultLevel
	}

	tDist := distuv.StudentsT{
		Nu:    float64(n - 1),
		Mu:    0,
		Sigma: 1,
	}
	margin := tDist.Quantile(1-(1-level)/2) * s.StdError()
	return mean - margin, mean + margin
}

// TestResult is the outcome of a one-sided t-test.
type TestResult struct {
	T  float64 `json:"t"`
	DF int     `json:"df"`
	P  float64 `json:"p"`
}

// Significant reports whether the null hypothesis is rejected at alpha.
func (r TestResult) Significant(alpha float64) bool {
	return r.P < alpha
}

// OneSidedTest tests H0: mean <= mu0 against H1: mean > mu0.
func (s *Sample) OneSidedTest(mu0 float64) TestResult {
	n := len(s.values)
	if n < 2 {
		return TestResult{P: 1}
	}

	res := TestResult{DF: n - 1}
	diff := s.Mean() - mu0
	se := s.StdError()
	if se == 0 {
		switch {
		case diff > 0:
			res.T, res.P = math.Inf(1), 0
		case diff < 0:
			res.T, res.P = math.Inf(-1), 1
		default:
			res.P = 0.5
		}
		return res
	}

	res.T = diff / se
	tDist := distuv.StudentsT{
		Nu:    float64(res.DF),
		Mu:    0,
		Sigma: 1,
	}
	res.P = math.Min(math.Max(1-tDist.CDF(res.T), 0), 1)
	return res
}

// Min returns the smallest observation, or 0 for an empty sample.
func (s *Sample) Min() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return floats.Min(s.values)
}

// Max returns the largest observation, or 0 for an empty sample.
func (s *Sample) Max() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return floats.Max(s.values)
}

// Median returns the median value of all results
func (s *Sample) Median() float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Sample) Percentile(p float64) float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := s.sorted()
	p = math.Min(math.Max(p, 0), 1)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Sample) sorted() []float64 {
	sorted := make([]float64, len(s.values))
	copy(sorted, s.values)
	sort.Float64s(sorted)
	return sorted
}

// Bucket is one histogram bin covering [Lo, Hi).
type Bucket struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram splits the observations into bins equal-width buckets spanning
// the sample's range. The last bucket includes the maximum.
func (s *Sample) Histogram(bins int) []Bucket {
	if len(s.values) == 0 || bins < 1 {
		return nil
	}
	sorted := s.sorted()
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []Bucket{{Lo: lo, Hi: hi, Count: len(sorted)}}
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	out := make([]Bucket, bins)
	for i := range out {
		out[i] = Bucket{Lo: dividers[i], Hi: dividers[i+1], Count: int(counts[i])}
	}
	out[bins-1].Hi = hi
	return out
}

// Summary is the reportable digest of a sample.
type Summary struct {
	Sessions int        `json:"sessions"`
	Mean     float64    `json:"mean"`
	StdDev   float64    `json:"std_dev"`
	StdError float64    `json:"std_error"`
	Level    float64    `json:"level"`
	CILow    float64    `json:"ci_low"`
	CIHigh   float64    `json:"ci_high"`
	Median   float64    `json:"median"`
	P05      float64    `json:"p05"`
	P95      float64    `json:"p95"`
	Min      float64    `json:"min"`
	Max      float64    `json:"max"`
	Test     TestResult `json:"test"`
}

// Summarize computes a Summary at the given confidence level. The
// one-sided test is against a mean of zero.
func (s *Sample) Summarize(level float64) Summary {
	if level <= 0 || level >= 1 {
		level = DefaultLevel
	}
	low, high := s.ConfidenceInterval(level)
	return Summary{
		Sessions: s.Len(),
		Mean:     s.Mean(),
		StdDev:   s.StdDev(),
		StdError: s.StdError(),
		Level:    level,
		CILow:    low,
		CIHigh:   high,
		Median:   s.Median(),
		P05:      s.Percentile(0.05),
		P95:      s.Percentile(0.95),
		Min:      s.Min(),
		Max:      s.Max(),
		Test:     s.OneSidedTest(0),
	}
}

// Validate checks that the sample holds only finite values.
func (s *Sample) Validate() error {
	for i, v := range s.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d is not finite: %v", i, v)
		}
	}
	return nil
}
