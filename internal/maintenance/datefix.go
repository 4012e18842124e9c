// Package maintenance holds one-off data repair jobs.
package maintenance

import (
	"context"
	"fmt"
	"time"

	domainInvoice "freight-backoffice/internal/domain/invoice"
	domainShipment "freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/logger"
	appErrors "freight-backoffice/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DayShift moves a date by one calendar day in UTC.
const DayShift = 24 * time.Hour

type ShipmentDates interface {
	ListDated(ctx context.Context) ([]*domainShipment.Shipment, error)
	UpdateDates(ctx context.Context, shipmentID uuid.UUID, dates domainShipment.DateFields) error
}

type InvoiceDates interface {
	ListDated(ctx context.Context) ([]*domainInvoice.Invoice, error)
	UpdateDueDate(ctx context.Context, invoiceID uuid.UUID, dueDate *time.Time) error
}

type Result struct {
	Attempted int
	Succeeded int
	Failed    []appErrors.RecordFailure
}

// Err returns a PartialFailure when any record failed.
func (r *Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return &appErrors.PartialFailure{Attempted: r.Attempted, Succeeded: r.Succeeded, Failures: r.Failed}
}

// DateShifter moves stored dates that were saved a day off. Each record is saved
// on its own; a failed record is reported and the batch moves on.
type DateShifter struct {
	shipments ShipmentDates
	invoices  InvoiceDates
}

func NewDateShifter(shipments ShipmentDates, invoices InvoiceDates) *DateShifter {
	return &DateShifter{shipments: shipments, invoices: invoices}
}

// Correct moves every stored date forward one day.
func (d *DateShifter) Correct(ctx context.Context) (*Result, error) {
	return d.Shift(ctx, DayShift)
}

// Undo reverts Correct.
func (d *DateShifter) Undo(ctx context.Context) (*Result, error) {
	return d.Shift(ctx, -DayShift)
}

// Shift adds offset to every non-null shipment delivery/pickup date and invoice
// due date. The error is a PartialFailure when some records failed, or the list
// error when a collection could not be read at all.
func (d *DateShifter) Shift(ctx context.Context, offset time.Duration) (*Result, error) {
	result := &Result{}

	shipments, err := d.shipments.ListDated(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list shipments: %w", err)
	}
	for _, s := range shipments {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Attempted++
		dates := s.DateFields()
		shifted := domainShipment.DateFields{
			DeliveryDate:       shiftTime(dates.DeliveryDate, offset),
			ActualPickupDate:   shiftTime(dates.ActualPickupDate, offset),
			ActualDeliveryDate: shiftTime(dates.ActualDeliveryDate, offset),
		}
		if err := d.shipments.UpdateDates(ctx, s.ID, shifted); err != nil {
			result.fail("shipments", s.ID, err)
			continue
		}
		result.Succeeded++
	}

	invoices, err := d.invoices.ListDated(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list invoices: %w", err)
	}
	for _, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Attempted++
		if err := d.invoices.UpdateDueDate(ctx, inv.ID, shiftTime(inv.DueDate, offset)); err != nil {
			result.fail("invoices", inv.ID, err)
			continue
		}
		result.Succeeded++
	}

	logger.Info("Date shift finished",
		zap.Duration("offset", offset),
		zap.Int("attempted", result.Attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", len(result.Failed)),
		zap.String("event", "date_shift_finished"),
	)

	return result, result.Err()
}

func (r *Result) fail(collection string, id uuid.UUID, err error) {
	logger.Warn("Date shift failed for record",
		zap.String("collection", collection),
		zap.String("id", id.String()),
		zap.Error(err),
	)
	r.Failed = append(r.Failed, appErrors.RecordFailure{
		Collection: collection,
		ID:         id.String(),
		Reason:     err.Error(),
	})
}

func shiftTime(t *time.Time, offset time.Duration) *time.Time {
	if t == nil {
		return nil
	}
	shifted := t.Add(offset)
	return &shifted
}
