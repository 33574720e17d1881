package utils

import "golang.org/x/exp/constraints"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func IndexFunc[T any](slice []T, match func(T) bool) int {
	for i, v := range slice {
		if match(v) {
			return i
		}
	}
	return -1
}

// MaxIndices returns the indices of every element whose value ties for the
// maximum, in one pass over the slice.
func MaxIndices[T any, V constraints.Ordered](slice []T, value func(T) V) []int {
	var best V
	indices := []int{}
	for i, v := range slice {
		score := value(v)
		switch {
		case len(indices) == 0 || score > best:
			best = score
			indices = append(indices[:0], i)
		case score == best:
			indices = append(indices, i)
		}
	}
	return indices
}

func Sum[V constraints.Integer | constraints.Float](values []V) V {
	var total V
	for _, v := range values {
		total += v
	}
	return total
}
