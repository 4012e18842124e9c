package billing

import "github.com/shopspring/decimal"

// Round2 rounds money to cents, half away from zero.
func Round2(v float64) float64 {
	return roundPlaces(v, 2)
}

// Round4 rounds per-ton prices.
func Round4(v float64) float64 {
	return roundPlaces(v, 4)
}

func roundPlaces(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Sum adds amounts with decimal arithmetic and rounds the result to cents.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Round(2).Float64()
	return f
}
