package utils

// IntnSource is the subset of *rand.Rand used for sampling integers.
type IntnSource interface {
	Intn(n int) int
}

// SampleRandomIntRange samples a random integer within a range given by [min, max]
// using the given source.
func SampleRandomIntRange(min, max int, r IntnSource) int {
	return r.Intn(max-min+1) + min
}

// Clamp limits v to [lo, hi]. NaN passes through.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
