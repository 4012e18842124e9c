package report

import (
	"errors"
	"fmt"
)

// PageSpec is a page geometry in millimetres.
type PageSpec struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
	LineHeight   float64
	CellPadding  float64
	FontSize     float64
}

// LetterLandscape is US Letter turned sideways.
func LetterLandscape() PageSpec {
	return PageSpec{
		Width:        279.4,
		Height:       215.9,
		MarginTop:    12.7,
		MarginBottom: 12.7,
		MarginLeft:   10,
		MarginRight:  10,
		LineHeight:   4.5,
		CellPadding:  1.2,
		FontSize:     8,
	}
}

func (p PageSpec) UsableWidth() float64 {
	return p.Width - p.MarginLeft - p.MarginRight
}

// Bottom is the lowest y a row may reach.
func (p PageSpec) Bottom() float64 {
	return p.Height - p.MarginBottom
}

// TextStyle is the font face a row is drawn in. Bold text is wider, so rows are
// measured in the style they are drawn in.
type TextStyle int

const (
	StyleRegular TextStyle = iota
	StyleBold
	StyleItalic
)

// TextMeasurer reports how many lines text needs when wrapped to width.
type TextMeasurer interface {
	WrapLines(text string, width float64, style TextStyle) int
}

type RowKind int

const (
	RowHeader RowKind = iota
	RowGroupHeading
	RowDetail
	RowSubtotal
	RowGrandTotal
	RowEmpty
)

// Style is the face every cell of a row of this kind is drawn in.
func (k RowKind) Style() TextStyle {
	switch k {
	case RowHeader, RowGroupHeading, RowSubtotal, RowGrandTotal:
		return StyleBold
	case RowEmpty:
		return StyleItalic
	default:
		return StyleRegular
	}
}

// PlacedRow is a row positioned on a page. A heading or empty row spans the full
// width and carries a single cell.
type PlacedRow struct {
	Kind   RowKind
	Cells  []string
	Y      float64
	Height float64
}

type Page struct {
	Number int
	Rows   []PlacedRow
}

// Layout is a report positioned onto pages. Widths are absolute.
type Layout struct {
	Spec        PageSpec
	Columns     []Column
	Widths      []float64
	HeaderLines []string
	Pages       []Page
}

var ErrNoColumns = errors.New("report has no columns")

// BuildLayout positions every table row of the report. Values are formatted but
// never recomputed. The title block only appears on the first page; the column
// header repeats at the top of every page.
func BuildLayout(r *Report, ps PageSpec, m TextMeasurer) (*Layout, error) {
	if len(r.Columns) == 0 {
		return nil, ErrNoColumns
	}

	l := &Layout{
		Spec:        ps,
		Columns:     r.Columns,
		Widths:      scaleWidths(r.Columns, ps.UsableWidth()),
		HeaderLines: headerLines(r),
	}

	b := &builder{layout: l, measurer: m}
	b.newPage(float64(len(l.HeaderLines)+1) * ps.LineHeight)

	if r.IsEmpty() {
		b.place(RowEmpty, []string{"No records found for this period"})
	}

	for _, g := range r.GroupedData {
		if len(g.Items) == 0 {
			continue
		}
		b.place(RowGroupHeading, []string{g.Name})
		for _, item := range g.Items {
			b.place(RowDetail, item.Cells())
		}
		b.place(RowSubtotal, subtotalCells(r, g))
	}

	for _, t := range r.GrandTotals {
		b.place(RowGrandTotal, totalCells(len(r.Columns), t))
	}

	return l, nil
}

type builder struct {
	layout   *Layout
	measurer TextMeasurer
	y        float64
}

func (b *builder) page() *Page {
	return &b.layout.Pages[len(b.layout.Pages)-1]
}

func (b *builder) newPage(reserved float64) {
	ps := b.layout.Spec
	b.layout.Pages = append(b.layout.Pages, Page{Number: len(b.layout.Pages) + 1})
	b.y = ps.MarginTop + reserved
	titles := columnTitles(b.layout.Columns)
	b.emit(RowHeader, titles, b.rowHeight(RowHeader, titles))
}

// place emits a row, breaking the page first when it would cross the bottom
// margin. A row taller than an empty page is placed anyway.
func (b *builder) place(kind RowKind, cells []string) {
	h := b.rowHeight(kind, cells)
	onlyHeader := len(b.page().Rows) == 1
	if b.y+h > b.layout.Spec.Bottom() && !onlyHeader {
		b.newPage(0)
	}
	b.emit(kind, cells, h)
}

func (b *builder) emit(kind RowKind, cells []string, h float64) {
	page := b.page()
	page.Rows = append(page.Rows, PlacedRow{Kind: kind, Cells: cells, Y: b.y, Height: h})
	b.y += h
}

// rowHeight is the tallest wrapped cell times the line height plus padding.
func (b *builder) rowHeight(kind RowKind, cells []string) float64 {
	ps := b.layout.Spec
	lines := 1
	for i, text := range cells {
		width := ps.UsableWidth()
		if !spanning(kind) && i < len(b.layout.Widths) {
			width = b.layout.Widths[i]
		}
		if n := b.measurer.WrapLines(text, width-2*ps.CellPadding, kind.Style()); n > lines {
			lines = n
		}
	}
	return float64(lines)*ps.LineHeight + 2*ps.CellPadding
}

func spanning(kind RowKind) bool {
	return kind == RowGroupHeading || kind == RowEmpty
}

// Spanning reports whether the row is drawn as one full-width cell.
func (r PlacedRow) Spanning() bool {
	return spanning(r.Kind)
}

func scaleWidths(columns []Column, usable float64) []float64 {
	var total float64
	for _, c := range columns {
		total += c.Width
	}
	widths := make([]float64, len(columns))
	for i, c := range columns {
		if total <= 0 {
			widths[i] = usable / float64(len(columns))
			continue
		}
		widths[i] = usable * c.Width / total
	}
	return widths
}

func columnTitles(columns []Column) []string {
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.Title
	}
	return titles
}

func headerLines(r *Report) []string {
	lines := make([]string, 0, 4)
	if r.Issuer != "" {
		lines = append(lines, r.Issuer)
	}
	lines = append(lines,
		r.ReportTitle,
		r.EntityName,
		fmt.Sprintf("Period: %s", FormatPeriod(r.Period)),
	)
	return lines
}

func subtotalCells(r *Report, g Group) []string {
	cells := make([]string, len(r.Columns))
	cells[0] = fmt.Sprintf("Subtotal: %s", g.Name)
	if r.AmountColumn >= 0 && r.AmountColumn < len(cells) {
		cells[r.AmountColumn] = FormatCurrency(g.GroupTotalAmount)
	}
	if r.SecondaryColumn >= 0 && r.SecondaryColumn < len(cells) {
		cells[r.SecondaryColumn] = FormatCurrency(g.GroupTotalCommissionOrTotal)
	}
	return cells
}

func totalCells(n int, t TotalLine) []string {
	cells := make([]string, n)
	cells[0] = t.Label
	col := t.Column
	if col <= 0 || col >= n {
		col = n - 1
	}
	cells[col] = FormatCurrency(t.Amount)
	return cells
}
