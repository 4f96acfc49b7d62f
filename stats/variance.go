package stats

// SampleVariance returns the unbiased (n-1) variance of values.
// An empty slice yields 0 and a single value is returned as is.
func SampleVariance(values []float64) float64 {
	n := len(values)
	switch n {
	case 0:
		return 0
	case 1:
		return values[0]
	}

	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}

	return sumSq / float64(n-1)
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
