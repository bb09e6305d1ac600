// Package emit implements change-gated emission of median values: a median is
// forwarded only when its formatted representation differs from the last one
// forwarded, suppressing runs of repeats.
package emit

import "strconv"

// Record is one emitted output row. Records are immutable once produced and
// carry the median pre-formatted, since the formatted string is also the
// change-detection key.
type Record struct {
	ReceiveTS uint64
	Median    string
}

// FormatMedian renders a median with exactly 8 decimal places. This is the
// single formatting and comparison contract: two medians are "the same" for
// gating purposes exactly when their formatted strings are equal. The value is
// float64, so any higher precision an estimator might carry internally has
// already been narrowed; that narrowing is an accepted lossy step.
func FormatMedian(median float64) string {
	return strconv.FormatFloat(median, 'f', 8, 64)
}

// Emitter forwards (timestamp, median) pairs whose formatted median differs
// from the previously forwarded one. The only state is the last emitted
// string, scoped per instance so independent pipelines never interfere.
//
// This type is not concurrency safe.
type Emitter struct {
	last    string
	emitted bool
}

// NewEmitter creates an Emitter that will emit the first value offered.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Offer presents the next (timestamp, median) pair. It returns the emission
// record and true when the pair must be emitted: either nothing has been
// emitted yet, or the formatted median differs from the last emission.
// Otherwise it returns false and the pair is suppressed.
func (e *Emitter) Offer(receiveTS uint64, median float64) (Record, bool) {
	formatted := FormatMedian(median)
	if e.emitted && formatted == e.last {
		return Record{}, false
	}
	e.last = formatted
	e.emitted = true
	return Record{ReceiveTS: receiveTS, Median: formatted}, true
}

// Reset forgets the last emission, so the next Offer always emits.
func (e *Emitter) Reset() {
	e.last = ""
	e.emitted = false
}
