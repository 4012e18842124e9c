// Package render turns reports into downloadable documents.
package render

import (
	"fmt"

	"freight-backoffice/internal/report"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Document is a rendered report ready to send.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ParseFormat defaults to JSON.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatPDF, FormatXLSX:
		return Format(value), nil
	default:
		return "", fmt.Errorf("unsupported report format %q", value)
	}
}

// Render produces a binary document. JSON is served directly by the caller.
func Render(r *report.Report, format Format, ps report.PageSpec) (*Document, error) {
	switch format {
	case FormatPDF:
		body, err := PDF(r, ps)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: r.Filename("pdf"), ContentType: ContentTypePDF, Body: body}, nil
	case FormatXLSX:
		body, err := XLSX(r)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: r.Filename("xlsx"), ContentType: ContentTypeXLSX, Body: body}, nil
	default:
		return nil, fmt.Errorf("format %q is not a binary document", format)
	}
}
