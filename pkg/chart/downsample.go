package chart

// Downsample returns the indices of at most maxPoints samples out of n: every
// k-th index plus the last one. maxPoints <= 0 or n <= maxPoints keeps all.
// The first and last samples are always kept, so a maxPoints of 1 is raised
// to MinMaxPoints.
func Downsample(n, maxPoints int) []int {
	if n <= 0 {
		return nil
	}
	if maxPoints <= 0 || n <= maxPoints {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	if maxPoints < MinMaxPoints {
		maxPoints = MinMaxPoints
	}
	// The last sample is always appended, so stride over maxPoints-1 slots.
	k := (n - 1 + maxPoints - 2) / (maxPoints - 1)
	idx := make([]int, 0, maxPoints)
	for i := 0; i < n-1; i += k {
		idx = append(idx, i)
	}
	return append(idx, n-1)
}
