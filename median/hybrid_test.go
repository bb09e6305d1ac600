package median

import (
	"math"
	"math/rand"
	"testing"

	"github.com/influxdata/tdigest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Asserts that Median reports no value before any Add.
func TestHybrid_Empty(t *testing.T) {
	est := NewHybrid(4)

	_, ok := est.Median()

	assert.False(t, ok)
	assert.Equal(t, 0, est.Count())
	assert.False(t, est.Seeded())
}

// Asserts that a non-positive threshold falls back to the default.
func TestHybrid_DefaultThreshold(t *testing.T) {
	est := NewHybrid(0)
	assert.Equal(t, DefaultSeedThreshold, est.seedThreshold)
}

// Asserts that while buffering, the Hybrid's median equals the exact TwoHeap
// median for the same values, for every prefix length up to the threshold.
func TestHybrid_PreThresholdExactness(t *testing.T) {
	const threshold = 32
	rng := rand.New(rand.NewSource(42))
	hybrid := NewHybrid(threshold)
	exact := NewTwoHeap()

	for k := 1; k < threshold; k++ {
		v := float64(rng.Intn(100))
		hybrid.Add(v)
		exact.Add(v)

		hm, ok := hybrid.Median()
		require.True(t, ok)
		em, ok := exact.Median()
		require.True(t, ok)
		assert.Equal(t, em, hm, "after %d adds", k)
		assert.False(t, hybrid.Seeded())
	}
}

// Asserts that the switch to streaming happens at exactly the threshold and
// that the digest sees every buffered sample once, in insertion order.
func TestHybrid_TransitionIntegrity(t *testing.T) {
	const threshold = 16
	rng := rand.New(rand.NewSource(42))
	hybrid := NewHybrid(threshold)
	reference := tdigest.NewWithCompression(digestCompression)

	for i := 0; i < threshold-1; i++ {
		v := rng.Float64() * 100
		hybrid.Add(v)
		reference.Add(v, 1)
	}
	require.False(t, hybrid.Seeded())

	v := rng.Float64() * 100
	hybrid.Add(v)
	reference.Add(v, 1)

	require.True(t, hybrid.Seeded())
	assert.Equal(t, threshold, hybrid.Count())

	// A drop or duplicate during the buffer replay would shift the digest's
	// estimate away from a digest fed the same samples directly.
	m, ok := hybrid.Median()
	require.True(t, ok)
	assert.Equal(t, reference.Quantile(0.5), m)
}

// Asserts that the streaming estimate stays in lockstep with a reference
// digest fed the identical stream, so results are deterministic.
func TestHybrid_StreamingDeterminism(t *testing.T) {
	const threshold = 8
	rng := rand.New(rand.NewSource(42))
	hybrid := NewHybrid(threshold)
	reference := tdigest.NewWithCompression(digestCompression)

	for i := 0; i < 500; i++ {
		v := rng.NormFloat64()*10 + 100
		hybrid.Add(v)
		reference.Add(v, 1)

		if i+1 >= threshold {
			m, ok := hybrid.Median()
			require.True(t, ok)
			require.True(t, hybrid.Seeded())
			assert.Equal(t, reference.Quantile(0.5), m)
			assert.False(t, math.IsNaN(m))
			assert.False(t, math.IsInf(m, 0))
		}
	}
}

// Asserts the buffered medians for a short mixed stream, then finite
// deterministic estimates once streaming.
func TestHybrid_ShortStream(t *testing.T) {
	est := NewHybrid(4)
	expected := []float64{9, 5, 8, 5}
	values := []float64{9, 1, 8, 2, 7, 3}

	for i, v := range values {
		est.Add(v)
		m, ok := est.Median()
		require.True(t, ok)
		if i < len(expected) {
			assert.Equal(t, expected[i], m, "after %d adds", i+1)
		} else {
			assert.False(t, math.IsNaN(m))
			assert.False(t, math.IsInf(m, 0))
		}
	}
	assert.True(t, est.Seeded())
}

// Asserts that Reset returns a streaming Hybrid to empty exact buffering.
func TestHybrid_Reset(t *testing.T) {
	est := NewHybrid(4)
	for i := 0; i < 10; i++ {
		est.Add(float64(i))
	}
	require.True(t, est.Seeded())

	est.Reset()

	_, ok := est.Median()
	assert.False(t, ok)
	assert.False(t, est.Seeded())
	assert.Equal(t, 0, est.Count())

	est.Add(3)
	m, ok := est.Median()
	require.True(t, ok)
	assert.Equal(t, 3.0, m)
}
