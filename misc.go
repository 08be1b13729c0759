package polyfarm

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// outsideScreen reports whether every point lies beyond the same screen
// edge.
func outsideScreen(xs, ys []float32, width, height float32) bool {
	left, right, above, below := true, true, true, true
	for i := range xs {
		left = left && xs[i] < 0
		right = right && xs[i] > width
		above = above && ys[i] < 0
		below = below && ys[i] > height
	}
	return left || right || above || below
}
