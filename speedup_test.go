package bench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSpeedup(t *testing.T) {
	s, err := Speedup([]float64{10, 5, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, s)

	s, err = Speedup([]float64{10})
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = Speedup(nil)
	assert.ErrorIs(t, err, ErrEmptyCategory)
}

func TestSpeedupProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.Float64Range(0.001, 1e6), 1, 20).Draw(t, "values")
		s, err := Speedup(values)
		if err != nil {
			t.Fatal(err)
		}
		if len(s) != len(values)-1 {
			t.Fatalf("got %d speedups for %d values", len(s), len(values))
		}
		for i, v := range s {
			if v*values[i+1] < values[0]*(1-1e-9) || v*values[i+1] > values[0]*(1+1e-9) {
				t.Fatalf("speedup %d: %v * %v != %v", i, v, values[i+1], values[0])
			}
		}
	})
}

func TestComputeSeries(t *testing.T) {
	reports := []Report{
		{Name: "run_0_small.txt", Category: Small, Samples: []float64{10}},
		{Name: "run_0_medium.txt", Category: Medium, Samples: []float64{8, 12}},
		{Name: "run_0_large.txt", Category: Large, Samples: []float64{100}},
		{Name: "run_0_huge.txt", Samples: []float64{1000}},
		{Name: "run_1_small.txt", Category: Small, Samples: []float64{5}},
		{Name: "run_1_medium.txt", Category: Medium, Samples: []float64{4}},
		{Name: "run_1_large.txt", Category: Large, Samples: []float64{25}},
		{Name: "run_2_small.txt", Category: Small, Samples: []float64{1, 3}},
	}
	series, err := ComputeSeries(reports)
	require.NoError(t, err)
	assert.Equal(t, []Series{
		{Category: Small, Speedup: []float64{2, 5}},
		{Category: Medium, Speedup: []float64{2.5}},
		{Category: Large, Speedup: []float64{4}},
	}, series)
}

func TestComputeSeriesEmptyCategory(t *testing.T) {
	reports := []Report{
		{Name: "run_0_small.txt", Category: Small, Samples: []float64{10}},
		{Name: "run_0_large.txt", Category: Large, Samples: []float64{10}},
	}
	_, err := ComputeSeries(reports)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCategory))
	assert.Contains(t, err.Error(), "medium")
}

func TestEfficiency(t *testing.T) {
	assert.Equal(t, []float64{1, 0.75, 0.5}, Efficiency([]float64{1, 1.5, 2}, []int{1, 2, 4}))
	assert.Equal(t, []float64{1}, Efficiency([]float64{1, 1.5}, []int{1}))
}
