package invoice

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	domainInvoice "freight-backoffice/internal/domain/invoice"
)

const invoiceSequenceName = "invoice_number"

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// NumberGenerator produces invoice numbers of the form INV-{year}-{0000}.
type NumberGenerator interface {
	Next(ctx context.Context) (string, error)
}

// FormatInvoiceNumber zero-pads the sequence to four digits.
func FormatInvoiceNumber(year int, sequence int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, sequence)
}

// TrailingSequence returns the trailing digit run of an invoice number, or 0
// when there is none. A run too large for int64 is an error.
func TrailingSequence(invoiceNumber string) (int64, error) {
	match := trailingDigits.FindString(invoiceNumber)
	if match == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invoice number %q has an unreadable sequence: %w", invoiceNumber, err)
	}
	return n, nil
}

// lastSequence reads the sequence of the most recently created invoice.
func lastSequence(ctx context.Context, repo domainInvoice.Repository) (int64, error) {
	latest, err := repo.GetLatest(ctx)
	if errors.Is(err, domainInvoice.ErrInvoiceNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read latest invoice: %w", err)
	}
	return TrailingSequence(latest.InvoiceNumber)
}

// ScanNumberGenerator derives the next number from the most recently created
// invoice. Two concurrent callers can compute the same number; the unique index
// rejects the second write and the caller must retry with a fresh number.
type ScanNumberGenerator struct {
	invoices domainInvoice.Repository
	clock    func() time.Time
}

func NewScanNumberGenerator(invoices domainInvoice.Repository, clock func() time.Time) *ScanNumberGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &ScanNumberGenerator{invoices: invoices, clock: clock}
}

func (g *ScanNumberGenerator) Next(ctx context.Context) (string, error) {
	last, err := lastSequence(ctx, g.invoices)
	if err != nil {
		return "", err
	}
	return FormatInvoiceNumber(g.clock().Year(), last+1), nil
}

// SequenceNumberGenerator draws numbers from an atomic counter in the store. The
// counter is seeded from the latest invoice on first use so numbering continues
// where the scan left off.
type SequenceNumberGenerator struct {
	invoices  domainInvoice.Repository
	sequences domainInvoice.SequenceRepository
	clock     func() time.Time
}

func NewSequenceNumberGenerator(
	invoices domainInvoice.Repository,
	sequences domainInvoice.SequenceRepository,
	clock func() time.Time,
) *SequenceNumberGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &SequenceNumberGenerator{invoices: invoices, sequences: sequences, clock: clock}
}

func (g *SequenceNumberGenerator) Next(ctx context.Context) (string, error) {
	seed, err := lastSequence(ctx, g.invoices)
	if err != nil {
		return "", err
	}

	value, err := g.sequences.NextValue(ctx, invoiceSequenceName, seed)
	if err != nil {
		return "", fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return FormatInvoiceNumber(g.clock().Year(), value), nil
}
