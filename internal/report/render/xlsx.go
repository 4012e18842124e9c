package render

import (
	"fmt"

	"freight-backoffice/internal/report"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// moneyFormat is the built-in "#,##0.00" number format.
const moneyFormat = 4

// XLSX writes the grouped report to a single sheet.
func XLSX(r *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	boldMoney, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: moneyFormat})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{file: f, row: 1}

	w.set(1, r.ReportTitle, bold)
	w.row++
	if r.Issuer != "" {
		w.set(1, r.Issuer, 0)
		w.row++
	}
	w.set(1, r.EntityName, 0)
	w.row++
	w.set(1, "Period: "+report.FormatPeriod(r.Period), 0)
	w.row += 2

	for i, c := range r.Columns {
		w.set(i+1, c.Title, bold)
	}
	w.row++

	for _, g := range r.GroupedData {
		if len(g.Items) == 0 {
			continue
		}
		w.set(1, g.Name, bold)
		w.row++
		for _, item := range g.Items {
			for i, v := range item.Values() {
				w.set(i+1, v, 0)
			}
			w.row++
		}
		w.set(1, "Subtotal: "+g.Name, bold)
		if r.AmountColumn >= 0 {
			w.set(r.AmountColumn+1, g.GroupTotalAmount, boldMoney)
		}
		if r.SecondaryColumn >= 0 {
			w.set(r.SecondaryColumn+1, g.GroupTotalCommissionOrTotal, boldMoney)
		}
		w.row += 2
	}

	for _, t := range r.GrandTotals {
		col := t.Column
		if col <= 0 || col >= len(r.Columns) {
			col = len(r.Columns) - 1
		}
		w.set(1, t.Label, bold)
		w.set(col+1, t.Amount, boldMoney)
		w.row++
	}

	if w.err != nil {
		return nil, w.err
	}

	if len(r.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(r.Columns))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, "A", last, 18); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so the writing code stays linear.
type sheetWriter struct {
	file *excelize.File
	row  int
	err  error
}

func (w *sheetWriter) set(col int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.file.SetCellValue(sheetName, cell, value); err != nil {
		w.err = err
		return
	}
	if style != 0 {
		w.err = w.file.SetCellStyle(sheetName, cell, cell, style)
	}
}
