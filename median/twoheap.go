package median

import "container/heap"

// TwoHeap is an exact online median estimator. It keeps the lower half of all
// values in a max-heap and the upper half in a min-heap, so the median is
// always available from the heap tops. Add is O(log n), Median is O(1), and
// memory grows with the number of values added.
//
// This type is not concurrency safe.
type TwoHeap struct {
	lower maxHeap // values <= median, maximum on top
	upper minHeap // values >= median, minimum on top
}

var _ Estimator = &TwoHeap{}

// NewTwoHeap creates an empty TwoHeap estimator.
func NewTwoHeap() *TwoHeap {
	return &TwoHeap{}
}

// Add records a value and rebalances so the heap sizes never differ by more
// than one.
func (t *TwoHeap) Add(value float64) {
	if t.lower.Len() == 0 || value <= t.lower[0] {
		heap.Push(&t.lower, value)
	} else {
		heap.Push(&t.upper, value)
	}

	if t.lower.Len() > t.upper.Len()+1 {
		heap.Push(&t.upper, heap.Pop(&t.lower))
	} else if t.upper.Len() > t.lower.Len()+1 {
		heap.Push(&t.lower, heap.Pop(&t.upper))
	}
}

// Median returns the exact median of all values added so far, or false when
// empty. For an even count it averages the two middle values.
func (t *TwoHeap) Median() (float64, bool) {
	switch {
	case t.lower.Len() == 0 && t.upper.Len() == 0:
		return 0, false
	case t.lower.Len() == t.upper.Len():
		return (t.lower[0] + t.upper[0]) / 2, true
	case t.lower.Len() > t.upper.Len():
		return t.lower[0], true
	default:
		return t.upper[0], true
	}
}

// Reset discards all recorded values.
func (t *TwoHeap) Reset() {
	t.lower = nil
	t.upper = nil
}

// Size returns the number of values recorded.
func (t *TwoHeap) Size() int {
	return t.lower.Len() + t.upper.Len()
}

type maxHeap []float64

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return h[i] > h[j] }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(float64)) }
func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

type minHeap []float64

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(float64)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
