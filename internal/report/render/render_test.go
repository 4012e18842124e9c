package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"freight-backoffice/internal/billing"
	"freight-backoffice/internal/domain/driver"
	"freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var generated = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func sampleReport(lines int) *report.Report {
	rate := 0.25
	drv := &driver.Driver{FirstName: "Zoë", LastName: "Reyes", TruckNumber: "T-9", CommissionRate: &rate}
	inputs := make([]billing.CommissionInput, lines)
	for i := range inputs {
		delivered := time.Date(2025, 3, 1+i%28, 12, 0, 0, 0, time.UTC)
		inputs[i] = billing.CommissionInput{
			Shipment: &shipment.Shipment{
				ShipmentNumber: "SH-" + strings.Repeat("1", 1+i%5),
				Status:         shipment.StatusDelivered,
				Weight:         40000,
				Rate:           8,
				DeliveryDate:   &delivered,
				Origin:         shipment.Location{City: "Fresno"},
				Destination:    shipment.Location{City: "Reno"},
			},
			Driver:       drv,
			CustomerName: []string{"Acme Produce", "Valley Farms"}[i%2],
		}
	}
	summary := billing.CalculateCommissions(inputs)
	period := billing.NormalizeRange(&generated, &generated)
	return report.BuildCommissionReport(summary, drv.FullName(), period, generated)
}

func TestMeasurerWraps(t *testing.T) {
	m := NewMeasurer(report.LetterLandscape())

	assert.Equal(t, 1, m.WrapLines("", 20, report.StyleRegular))
	assert.Equal(t, 1, m.WrapLines("SH-1", 40, report.StyleRegular))
	assert.Greater(t, m.WrapLines(strings.Repeat("Sacramento ", 20), 30, report.StyleRegular), 2)
}

func TestMeasurerUsesDrawnStyle(t *testing.T) {
	m := NewMeasurer(report.LetterLandscape())
	text := strings.Repeat("flirt ", 30)

	// f, l, i, r and t are wider in Helvetica-Bold.
	found := false
	for width := 20.0; width <= 200 && !found; width += 0.5 {
		if m.WrapLines(text, width, report.StyleBold) > m.WrapLines(text, width, report.StyleRegular) {
			found = true
		}
	}
	assert.True(t, found, "bold text never needed more lines than regular")

	// Measuring bold must not leave the measurer in bold.
	regular := m.WrapLines(text, 60, report.StyleRegular)
	m.WrapLines(text, 60, report.StyleBold)
	assert.Equal(t, regular, m.WrapLines(text, 60, report.StyleRegular))
}

func TestPDF(t *testing.T) {
	body, err := PDF(sampleReport(120), report.LetterLandscape())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestXLSX(t *testing.T) {
	r := sampleReport(4)
	body, err := XLSX(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Driver Commission Report", title)

	header, err := f.GetCellValue(sheetName, "J5")
	require.NoError(t, err)
	assert.Equal(t, "Commission", header)

	group, err := f.GetCellValue(sheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Acme Produce", group)

	freight, err := f.GetCellValue(sheetName, "H7", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "160", freight)
}

func TestRenderDocument(t *testing.T) {
	r := sampleReport(2)

	doc, err := Render(r, FormatXLSX, report.LetterLandscape())
	require.NoError(t, err)
	assert.Equal(t, "CommissionReport_ZoReyes_20250401.xlsx", doc.Filename)
	assert.Equal(t, ContentTypeXLSX, doc.ContentType)

	_, err = Render(r, FormatJSON, report.LetterLandscape())
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"pdf", FormatPDF, false},
		{"xlsx", FormatXLSX, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
