package billing

import (
	"freight-backoffice/internal/domain/shipment"

	"github.com/shopspring/decimal"
)

// Totals are the derived amounts of an invoice.
type Totals struct {
	FuelSurchargeAmount float64 `json:"fuelSurchargeAmount"`
	TotalAmount         float64 `json:"totalAmount"`
}

// ComputeTotals derives the fuel surcharge and total from the three invoice inputs:
//
//	fuelSurchargeAmount = round2(subTotal * fuelSurchargeRate)
//	totalAmount         = round2(subTotal + fuelSurchargeAmount - depositAmount)
func ComputeTotals(subTotal, fuelSurchargeRate, depositAmount float64) Totals {
	sub := decimal.NewFromFloat(subTotal)
	fuel := sub.Mul(decimal.NewFromFloat(fuelSurchargeRate)).Round(2)
	total := sub.Add(fuel).Sub(decimal.NewFromFloat(depositAmount)).Round(2)

	fuelAmount, _ := fuel.Float64()
	totalAmount, _ := total.Float64()
	return Totals{
		FuelSurchargeAmount: fuelAmount,
		TotalAmount:         totalAmount,
	}
}

// SubTotal sums the stored freight cost of each shipment.
func SubTotal(shipments []*shipment.Shipment) float64 {
	amounts := make([]float64, 0, len(shipments))
	for _, s := range shipments {
		amounts = append(amounts, s.FreightCost)
	}
	return Sum(amounts...)
}

// FreightCost is the billed amount for a load: rate per ton times actual tons.
// The minimum weight floor does not apply here.
func FreightCost(rate, weight float64) float64 {
	cost := decimal.NewFromFloat(rate).Mul(decimal.NewFromFloat(weight)).Div(decimal.NewFromInt(Ton))
	f, _ := cost.Round(2).Float64()
	return f
}

// FreightCostMatches reports whether a supplied freight cost agrees with rate and
// weight to within one cent.
func FreightCostMatches(freightCost, rate, weight float64) bool {
	diff := decimal.NewFromFloat(freightCost).Sub(decimal.NewFromFloat(FreightCost(rate, weight))).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(0.01))
}
