package util

// SelectMedian returns the exact median of values, partially reordering the
// slice in place via quickselect. For an even count, the result is the average
// of the two middle elements, found by selecting the upper middle and taking
// the maximum of the partition below it — valid because the partition leaves
// every element less than or equal to the selected one on its left.
//
// Panics when values is empty.
func SelectMedian(values []float64) float64 {
	n := len(values)
	k := n / 2
	selectKth(values, k)
	if n%2 == 1 {
		return values[k]
	}
	return (values[k] + maxOf(values[:k])) / 2
}

// selectKth reorders values so that values[k] holds the element that would be
// at index k in sorted order, with values[i] <= values[k] for all i < k.
func selectKth(values []float64, k int) {
	lo, hi := 0, len(values)-1
	for lo < hi {
		p := partition(values, lo, hi)
		switch {
		case p == k:
			return
		case p < k:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition picks a median-of-three pivot, moves every element <= pivot to its
// left, and returns the pivot's final index. The pivot choice is deterministic
// so repeated queries over the same data behave identically.
func partition(values []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if values[mid] < values[lo] {
		values[mid], values[lo] = values[lo], values[mid]
	}
	if values[hi] < values[lo] {
		values[hi], values[lo] = values[lo], values[hi]
	}
	if values[hi] < values[mid] {
		values[hi], values[mid] = values[mid], values[hi]
	}
	pivot := values[mid]
	values[mid], values[hi] = values[hi], values[mid]

	i := lo
	for j := lo; j < hi; j++ {
		if values[j] <= pivot {
			values[i], values[j] = values[j], values[i]
			i++
		}
	}
	values[i], values[hi] = values[hi], values[i]
	return i
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
