// utils/summary.go
package utils

// Rollups are computed over the page just fetched, never the full filtered
// set, and hold no state between requests.

func SumFloat(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// AvgFloat returns 0 for an empty page rather than dividing by zero.
func AvgFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return SumFloat(values) / float64(len(values))
}

// CountBy groups by a categorical key. Empty input yields an empty map.
func CountBy(keys []string) map[string]int {
	counts := make(map[string]int)
	for _, k := range keys {
		counts[k]++
	}
	return counts
}
