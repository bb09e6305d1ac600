package median

import (
	"github.com/influxdata/tdigest"

	"medianflow/internal/util"
)

// DefaultSeedThreshold is the number of samples a Hybrid buffers exactly
// before switching to streaming estimation.
const DefaultSeedThreshold = 64

// digestCompression controls the t-digest's accuracy/memory trade-off.
const digestCompression = 100

type hybridState int

const (
	// buffering holds raw samples and answers exactly.
	buffering hybridState = iota
	// streaming feeds a constant-memory digest and answers approximately.
	// Terminal: a Hybrid never returns to buffering except via Reset.
	streaming
)

// Hybrid is an online median estimator that is exact while small and switches
// to constant-memory approximation at scale. It buffers the first
// seedThreshold samples and answers with the exact median via linear-time
// selection. When the buffer fills, it irreversibly hands every buffered
// sample to a streaming t-digest and answers with the digest's 0.5-quantile
// estimate from then on. Post-switch medians are approximations: the error
// depends on the digest's compression and the data distribution. This is the
// intended trade for O(1) updates and bounded memory on long streams.
//
// This type is not concurrency safe.
type Hybrid struct {
	seedThreshold int
	count         int

	state  hybridState
	buffer []float64
	digest *tdigest.TDigest
}

var _ Estimator = &Hybrid{}

// NewHybrid creates a Hybrid estimator that buffers seedThreshold samples
// before switching to streaming estimation. A seedThreshold <= 0 selects
// DefaultSeedThreshold.
func NewHybrid(seedThreshold int) *Hybrid {
	if seedThreshold <= 0 {
		seedThreshold = DefaultSeedThreshold
	}
	return &Hybrid{
		seedThreshold: seedThreshold,
		buffer:        make([]float64, 0, seedThreshold),
	}
}

// Add records a value. The add that fills the seed buffer performs the
// one-way switch to streaming: every buffered sample is replayed into the
// digest in insertion order, then the buffer is released.
func (h *Hybrid) Add(value float64) {
	h.count++
	if h.state == streaming {
		h.digest.Add(value, 1)
		return
	}

	h.buffer = append(h.buffer, value)
	if len(h.buffer) >= h.seedThreshold {
		h.digest = tdigest.NewWithCompression(digestCompression)
		for _, v := range h.buffer {
			h.digest.Add(v, 1)
		}
		h.buffer = nil
		h.state = streaming
	}
}

// Median returns the current median, or false when no values have been added.
// The result is exact while buffering and an approximation once streaming.
func (h *Hybrid) Median() (float64, bool) {
	if h.state == streaming {
		return h.digest.Quantile(0.5), true
	}
	if len(h.buffer) == 0 {
		return 0, false
	}
	// Select on a scratch copy so Median stays a read-only query.
	scratch := make([]float64, len(h.buffer))
	copy(scratch, h.buffer)
	return util.SelectMedian(scratch), true
}

// Reset discards all state and returns to exact buffering.
func (h *Hybrid) Reset() {
	h.count = 0
	h.state = buffering
	h.buffer = make([]float64, 0, h.seedThreshold)
	h.digest = nil
}

// Count returns the number of values recorded across both states.
func (h *Hybrid) Count() int {
	return h.count
}

// Seeded returns true once the estimator has switched to streaming
// estimation, after which medians are approximate.
func (h *Hybrid) Seeded() bool {
	return h.state == streaming
}
