package bench

import (
	"errors"
	"fmt"
)

var ErrEmptyCategory = errors.New("category has no timing files")

// Series holds the speedups of one category. The baseline is not included.
type Series struct {
	Category Category  `json:"category"`
	Speedup  []float64 `json:"speedup"`
}

// Speedup divides the first value by every value and drops the
// baseline's own ratio.
func Speedup(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyCategory
	}
	base := values[0]
	s := make([]float64, 0, len(values)-1)
	for _, v := range values[1:] {
		s = append(s, base/v)
	}
	return s, nil
}

// ComputeSeries computes one speedup series per category from the
// report averages, in Categories order.
func ComputeSeries(reports []Report) ([]Series, error) {
	groups := GroupByCategory(reports)
	series := make([]Series, 0, len(Categories))
	for _, c := range Categories {
		var means []float64
		for _, r := range groups[c] {
			means = append(means, r.Mean())
		}
		s, err := Speedup(means)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		series = append(series, Series{Category: c, Speedup: s})
	}
	return series, nil
}

// Efficiency returns speedup per thread for each point of a series.
// Points beyond the end of threads are dropped.
func Efficiency(speedup []float64, threads []int) []float64 {
	n := len(speedup)
	if len(threads) < n {
		n = len(threads)
	}
	eff := make([]float64, n)
	for i := range eff {
		eff[i] = speedup[i] / float64(threads[i])
	}
	return eff
}
