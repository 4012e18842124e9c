package billing

import (
	"sort"
	"time"

	"freight-backoffice/internal/domain/driver"
	"freight-backoffice/internal/domain/shipment"

	"github.com/shopspring/decimal"
)

const (
	// Ton is the number of weight units (pounds) in a billing ton.
	Ton = 2000
	// MinimumPaymentWeight is the floor applied to light loads when paying drivers.
	MinimumPaymentWeight = 40000
)

// CommissionInput is one shipment with its resolved relations. Driver is nil when
// the reference does not resolve.
type CommissionInput struct {
	Shipment     *shipment.Shipment
	Driver       *driver.Driver
	CustomerName string
}

type CommissionLine struct {
	Date              *time.Time `json:"date"`
	ShipmentNumber    string     `json:"shipmentNumber"`
	OriginDestination string     `json:"originDestination"`
	DriverName        string     `json:"driverName"`
	TruckNumber       string     `json:"truckNumber"`
	Price             float64    `json:"price"`
	Weight            float64    `json:"weight"`
	FreightAmount     float64    `json:"freightAmount"`
	CommissionRate    float64    `json:"commissionRate"`
	CommissionAmount  float64    `json:"commissionAmount"`
	CustomerName      string     `json:"customerName"`
}

type CommissionGroup struct {
	CustomerName          string           `json:"customerName"`
	Items                 []CommissionLine `json:"items"`
	TotalFreightAmount    float64          `json:"groupTotalAmount"`
	TotalCommissionAmount float64          `json:"groupTotalCommission"`
}

// CommissionSummary holds lines grouped by customer in first-seen order.
type CommissionSummary struct {
	Groups                []*CommissionGroup `json:"groups"`
	TotalFreightAmount    float64            `json:"totalFreightAmount"`
	TotalCommissionAmount float64            `json:"totalCommissionAmount"`
	LineCount             int                `json:"lineCount"`
	Excluded              int                `json:"excluded"`
}

// EffectiveWeight applies the minimum payment weight.
func EffectiveWeight(weight float64) float64 {
	if weight < MinimumPaymentWeight {
		return MinimumPaymentWeight
	}
	return weight
}

// CommissionBase is effectiveWeight / Ton * rate.
func CommissionBase(weight, rate float64) float64 {
	base := decimal.NewFromFloat(EffectiveWeight(weight)).
		Div(decimal.NewFromInt(Ton)).
		Mul(decimal.NewFromFloat(rate))
	f, _ := base.Float64()
	return f
}

// CommissionAmount is the driver's share of the base.
func CommissionAmount(base, commissionRate float64) float64 {
	f, _ := decimal.NewFromFloat(base).Mul(decimal.NewFromFloat(commissionRate)).Float64()
	return f
}

// BuildCommissionLine converts one input into a report line. It returns false for
// shipments that carry no payable commission.
func BuildCommissionLine(in CommissionInput) (CommissionLine, bool) {
	s := in.Shipment
	if s == nil || s.Status != shipment.StatusDelivered {
		return CommissionLine{}, false
	}
	if in.Driver == nil || in.Driver.CommissionRate == nil {
		return CommissionLine{}, false
	}

	rate := *in.Driver.CommissionRate
	base := CommissionBase(s.Weight, s.Rate)

	return CommissionLine{
		Date:              s.DeliveryDate,
		ShipmentNumber:    s.ShipmentNumber,
		OriginDestination: s.Route(),
		DriverName:        in.Driver.FullName(),
		TruckNumber:       in.Driver.TruckNumber,
		Price:             Round4(s.Rate),
		Weight:            s.Weight,
		FreightAmount:     Round2(base),
		CommissionRate:    rate,
		CommissionAmount:  Round2(CommissionAmount(base, rate)),
		CustomerName:      in.CustomerName,
	}, true
}

// CalculateCommissions builds grouped commission lines. Inputs are ordered by
// delivery date first, so group order follows the earliest delivery per customer.
// An empty input yields an empty summary.
func CalculateCommissions(inputs []CommissionInput) *CommissionSummary {
	ordered := make([]CommissionInput, len(inputs))
	copy(ordered, inputs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return deliveredBefore(ordered[i].Shipment, ordered[j].Shipment)
	})

	summary := &CommissionSummary{Groups: []*CommissionGroup{}}
	index := make(map[string]*CommissionGroup)

	for _, in := range ordered {
		line, ok := BuildCommissionLine(in)
		if !ok {
			summary.Excluded++
			continue
		}

		group, exists := index[line.CustomerName]
		if !exists {
			group = &CommissionGroup{CustomerName: line.CustomerName}
			index[line.CustomerName] = group
			summary.Groups = append(summary.Groups, group)
		}
		group.Items = append(group.Items, line)
		summary.LineCount++
	}

	freightTotals := make([]float64, 0, len(summary.Groups))
	commissionTotals := make([]float64, 0, len(summary.Groups))
	for _, group := range summary.Groups {
		freight := make([]float64, len(group.Items))
		commission := make([]float64, len(group.Items))
		for i, item := range group.Items {
			freight[i] = item.FreightAmount
			commission[i] = item.CommissionAmount
		}
		group.TotalFreightAmount = Sum(freight...)
		group.TotalCommissionAmount = Sum(commission...)

		freightTotals = append(freightTotals, group.TotalFreightAmount)
		commissionTotals = append(commissionTotals, group.TotalCommissionAmount)
	}
	summary.TotalFreightAmount = Sum(freightTotals...)
	summary.TotalCommissionAmount = Sum(commissionTotals...)

	return summary
}

// deliveredBefore orders by delivery date with undated shipments last.
func deliveredBefore(a, b *shipment.Shipment) bool {
	if a == nil || b == nil {
		return b == nil && a != nil
	}
	switch {
	case a.DeliveryDate == nil && b.DeliveryDate == nil:
		return a.ShipmentNumber < b.ShipmentNumber
	case a.DeliveryDate == nil:
		return false
	case b.DeliveryDate == nil:
		return true
	case a.DeliveryDate.Equal(*b.DeliveryDate):
		return a.ShipmentNumber < b.ShipmentNumber
	default:
		return a.DeliveryDate.Before(*b.DeliveryDate)
	}
}
