// Package memory is a process-local implementation of the repositories. It backs
// STORE_DRIVER=memory and the service tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"freight-backoffice/internal/domain/customer"
	"freight-backoffice/internal/domain/driver"
	"freight-backoffice/internal/domain/invoice"
	"freight-backoffice/internal/domain/shipment"
	appErrors "freight-backoffice/pkg/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu        sync.RWMutex
	shipments map[uuid.UUID]*shipment.Shipment
	drivers   map[uuid.UUID]*driver.Driver
	customers map[uuid.UUID]*customer.Customer
	invoices  map[uuid.UUID]*invoice.Invoice
	sequences map[string]int64
	// seq orders records created within the same clock tick
	seq   int64
	order map[uuid.UUID]int64
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		shipments: make(map[uuid.UUID]*shipment.Shipment),
		drivers:   make(map[uuid.UUID]*driver.Driver),
		customers: make(map[uuid.UUID]*customer.Customer),
		invoices:  make(map[uuid.UUID]*invoice.Invoice),
		sequences: make(map[string]int64),
		order:     make(map[uuid.UUID]int64),
		now:       time.Now,
	}
}

// SetClock replaces the timestamp source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Shipments() *ShipmentRepository  { return &ShipmentRepository{store: s} }
func (s *Store) Drivers() *DriverRepository      { return &DriverRepository{store: s} }
func (s *Store) Customers() *CustomerRepository  { return &CustomerRepository{store: s} }
func (s *Store) Invoices() *InvoiceRepository    { return &InvoiceRepository{store: s} }
func (s *Store) Sequences() *SequenceRepository  { return &SequenceRepository{store: s} }
func (s *Store) Health() error                   { return nil }
func (s *Store) Close() error                    { return nil }

func (s *Store) track(id uuid.UUID) {
	s.seq++
	s.order[id] = s.seq
}

func duplicate(constraint string) error {
	return &appErrors.DuplicateKeyError{Constraint: constraint}
}

func page[T any](items []T, pageNum, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if pageNum <= 0 {
		pageNum = 1
	}
	start := (pageNum - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneShipment(src *shipment.Shipment) *shipment.Shipment {
	c := *src
	c.ActualPickupDate = copyTime(src.ActualPickupDate)
	c.DeliveryDate = copyTime(src.DeliveryDate)
	c.ActualDeliveryDate = copyTime(src.ActualDeliveryDate)
	c.DriverID = copyUUID(src.DriverID)
	c.InvoiceID = copyUUID(src.InvoiceID)
	c.Notes = copyString(src.Notes)
	return &c
}

func cloneDriver(src *driver.Driver) *driver.Driver {
	c := *src
	c.Email = copyString(src.Email)
	c.Phone = copyString(src.Phone)
	c.CommissionRate = copyFloat(src.CommissionRate)
	return &c
}

func cloneCustomer(src *customer.Customer) *customer.Customer {
	c := *src
	c.Email = copyString(src.Email)
	c.Phone = copyString(src.Phone)
	c.Address = copyString(src.Address)
	return &c
}

func cloneInvoice(src *invoice.Invoice) *invoice.Invoice {
	c := *src
	c.ShipmentIDs = append([]uuid.UUID(nil), src.ShipmentIDs...)
	c.DueDate = copyTime(src.DueDate)
	c.Notes = copyString(src.Notes)
	return &c
}

// sortByCreated orders newest first unless asc is set, using insertion order to
// break ties.
func sortByCreated[T any](s *Store, items []T, created func(T) time.Time, id func(T) uuid.UUID, asc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			if asc {
				return ci.Before(cj)
			}
			return ci.After(cj)
		}
		if asc {
			return s.order[id(items[i])] < s.order[id(items[j])]
		}
		return s.order[id(items[i])] > s.order[id(items[j])]
	})
}
