package systems

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// absFloat returns the absolute value of a float32.
func absFloat(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
