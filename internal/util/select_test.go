package util

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Asserts that SelectMedian matches a full-sort oracle for odd and even counts.
func TestSelectMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"single", []float64{7}, 7},
		{"pair", []float64{9, 1}, 5},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{9, 1, 8, 2}, 5},
		{"duplicates", []float64{5, 5, 5, 5}, 5},
		{"negative", []float64{-3, -1, -2, -4}, -2.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SelectMedian(slices.Clone(tc.values)))
		})
	}
}

// Asserts that SelectMedian agrees with an independent median implementation
// across random inputs of every parity and with heavy duplication.
func TestSelectMedian_RandomOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 1; n <= 200; n++ {
		values := make([]float64, n)
		for i := range values {
			// Small domain forces duplicate values
			values[i] = float64(rng.Intn(20))
		}

		expected, err := stats.Median(slices.Clone(values))
		require.NoError(t, err)
		assert.Equal(t, expected, SelectMedian(values), "n=%d", n)
	}
}

// Asserts that after selection every element left of the middle index is <= the
// selected element, which the even-count tie-break depends on.
func TestSelectKth_PartitionInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(43))

	for trial := 0; trial < 100; trial++ {
		n := 2 + rng.Intn(100)
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.Float64() * 100
		}

		k := n / 2
		selectKth(values, k)
		for i := 0; i < k; i++ {
			require.LessOrEqual(t, values[i], values[k])
		}
	}
}
