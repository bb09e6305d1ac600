// Package median provides online median estimators for a stream of price
// observations. Two interchangeable strategies are available: TwoHeap, which is
// always exact, and Hybrid, which trades exactness for constant memory once the
// stream grows past a configurable seed size.
package median

// Estimator estimates the running median of all values added so far.
//
// Implementations are not concurrency safe. Each stream must own its own
// instance; correctness depends on values arriving in replay order.
type Estimator interface {
	// Add records a value.
	Add(value float64)

	// Median returns the current median estimate. The bool is false when no
	// values have been added yet, in which case there is no median. Median is
	// a read-only query and never changes estimator state.
	Median() (float64, bool)

	// Reset discards all recorded values, returning the estimator to its
	// initial empty state.
	Reset()
}
