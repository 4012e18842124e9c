package render

import (
	"bytes"
	"fmt"
	"time"

	"freight-backoffice/internal/report"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// Measurer wraps text with the metrics of the core PDF font at the table size.
type Measurer struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	size float64
}

func NewMeasurer(ps report.PageSpec) *Measurer {
	pdf := newDocument(ps)
	return &Measurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), size: fontSize(ps)}
}

func (m *Measurer) WrapLines(text string, width float64, style report.TextStyle) int {
	if text == "" || width <= 0 {
		return 1
	}
	m.pdf.SetFont(fontFamily, fontStyle(style), m.size)
	lines := m.pdf.SplitLines([]byte(m.tr(text)), width)
	if len(lines) == 0 {
		return 1
	}
	return len(lines)
}

func newDocument(ps report.PageSpec) *fpdf.Fpdf {
	// the custom size is already oriented; "L" would swap it again
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: ps.Width, Ht: ps.Height},
	})
	pdf.SetMargins(ps.MarginLeft, ps.MarginTop, ps.MarginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "", fontSize(ps))
	return pdf
}

func fontStyle(style report.TextStyle) string {
	switch style {
	case report.StyleBold:
		return "B"
	case report.StyleItalic:
		return "I"
	default:
		return ""
	}
}

func fontSize(ps report.PageSpec) float64 {
	if ps.FontSize > 0 {
		return ps.FontSize
	}
	return 8
}

// PDF lays out the report on the given page and draws it.
func PDF(r *report.Report, ps report.PageSpec) ([]byte, error) {
	layout, err := report.BuildLayout(r, ps, NewMeasurer(ps))
	if err != nil {
		return nil, err
	}
	return DrawLayout(layout, r.ReportTitle, r.GeneratedAt)
}

// DrawLayout draws a prepared layout. Positions come from the layout only.
func DrawLayout(layout *report.Layout, title string, created time.Time) ([]byte, error) {
	ps := layout.Spec
	pdf := newDocument(ps)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(title, true)
	pdf.SetCreator("freight-backoffice", true)
	if !created.IsZero() {
		pdf.SetCreationDate(created)
	}
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetFont(fontFamily, "", fontSize(ps)-1)
		pdf.SetXY(ps.MarginLeft, ps.Height-ps.MarginBottom+2)
		pdf.CellFormat(ps.UsableWidth(), ps.LineHeight,
			fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	for _, page := range layout.Pages {
		pdf.AddPage()
		if page.Number == 1 {
			drawHeaderLines(pdf, tr, layout)
		}
		for _, row := range page.Rows {
			drawRow(pdf, tr, layout, row)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to draw pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeaderLines(pdf *fpdf.Fpdf, tr func(string) string, layout *report.Layout) {
	ps := layout.Spec
	y := ps.MarginTop
	for i, line := range layout.HeaderLines {
		style, size := "", fontSize(ps)+1
		if i == 0 {
			style, size = "B", fontSize(ps)+4
		}
		pdf.SetFont(fontFamily, style, size)
		pdf.SetXY(ps.MarginLeft, y)
		pdf.CellFormat(ps.UsableWidth(), ps.LineHeight, tr(line), "", 0, "L", false, 0, "")
		y += ps.LineHeight
	}
}

func drawRow(pdf *fpdf.Fpdf, tr func(string) string, layout *report.Layout, row report.PlacedRow) {
	ps := layout.Spec

	fill := false
	switch row.Kind {
	case report.RowHeader:
		fill = true
		pdf.SetFillColor(220, 220, 220)
	case report.RowGroupHeading:
		fill = true
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.SetFont(fontFamily, fontStyle(row.Kind.Style()), fontSize(ps))

	if row.Spanning() {
		drawCell(pdf, tr(first(row.Cells)), ps.MarginLeft, row.Y, ps.UsableWidth(), row.Height, "L", fill, ps)
		return
	}

	x := ps.MarginLeft
	for i, width := range layout.Widths {
		text := ""
		if i < len(row.Cells) {
			text = row.Cells[i]
		}
		align := string(layout.Columns[i].Align)
		if row.Kind == report.RowHeader || align == "" {
			align = "L"
		}
		drawCell(pdf, tr(text), x, row.Y, width, row.Height, align, fill, ps)
		x += width
	}
}

func drawCell(pdf *fpdf.Fpdf, text string, x, y, w, h float64, align string, fill bool, ps report.PageSpec) {
	rectStyle := "D"
	if fill {
		rectStyle = "FD"
	}
	pdf.Rect(x, y, w, h, rectStyle)
	pdf.SetXY(x+ps.CellPadding, y+ps.CellPadding)
	pdf.MultiCell(w-2*ps.CellPadding, ps.LineHeight, text, "", align, false)
}

func first(cells []string) string {
	if len(cells) == 0 {
		return ""
	}
	return cells[0]
}
