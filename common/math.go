package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
