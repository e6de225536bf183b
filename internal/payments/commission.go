package payments

import (
	"fmt"
	"math"
)

// Due is count × rate rounded to cents.
func Due(count int, rate float64) float64 {
	if count <= 0 || rate <= 0 {
		return 0
	}
	return math.Round(float64(count)*rate*100) / 100
}

func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
