package helper

import "math"

// Percentage: round(part/total*100), 0 kalau total = 0.
func Percentage(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
