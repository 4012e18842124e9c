// Package report turns billing results into grouped report data and print layouts.
package report

import (
	"time"

	"freight-backoffice/internal/billing"
)

type Kind string

const (
	KindCommission Kind = "commission"
	KindInvoice    Kind = "invoice"
)

type Align string

const (
	AlignLeft   Align = "L"
	AlignRight  Align = "R"
	AlignCenter Align = "C"
)

// Column describes one table column. Width is relative to the other columns.
type Column struct {
	Title string
	Width float64
	Align Align
}

// Row is one detail line. Cells are display strings, Values the raw values in the
// same column order.
type Row interface {
	Cells() []string
	Values() []interface{}
}

type Group struct {
	Name                        string  `json:"name"`
	Items                       []Row   `json:"items"`
	GroupTotalAmount            float64 `json:"groupTotalAmount"`
	GroupTotalCommissionOrTotal float64 `json:"groupTotalCommissionOrTotal"`
}

// TotalLine is one grand total. Column is where the amount prints.
type TotalLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Column int     `json:"-"`
}

type Report struct {
	Kind        Kind              `json:"kind"`
	ReportTitle string            `json:"reportTitle"`
	EntityName  string            `json:"entityName"`
	Issuer      string            `json:"-"`
	Period      billing.DateRange `json:"period"`
	Columns     []Column          `json:"-"`
	GroupedData []Group           `json:"groupedData"`
	GrandTotals []TotalLine       `json:"grandTotals"`
	GeneratedAt time.Time         `json:"generatedAt"`

	// AmountColumn and SecondaryColumn locate the group totals in print; -1 hides one.
	AmountColumn    int    `json:"-"`
	SecondaryColumn int    `json:"-"`
	FilePrefix      string `json:"-"`
}

// IsEmpty reports whether no group carries any item.
func (r *Report) IsEmpty() bool {
	for _, g := range r.GroupedData {
		if len(g.Items) > 0 {
			return false
		}
	}
	return true
}

// Filename is the suggested download name for the given extension.
func (r *Report) Filename(ext string) string {
	return Filename(r.FilePrefix, r.EntityName, r.GeneratedAt, ext)
}
