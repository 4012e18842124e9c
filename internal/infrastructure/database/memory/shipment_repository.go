package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"freight-backoffice/internal/domain/shipment"

	"github.com/google/uuid"
)

type ShipmentRepository struct {
	store *Store
}

func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.shipments {
		if existing.ShipmentNumber == s.ShipmentNumber {
			return duplicate("shipments_shipment_number_key")
		}
	}

	now := r.store.now()
	s.ID = uuid.New()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = shipment.StatusPending
	}

	r.store.shipments[s.ID] = cloneShipment(s)
	r.store.track(s.ID)
	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.shipments[shipmentID]
	if !ok {
		return nil, shipment.ErrShipmentNotFound
	}
	return cloneShipment(s), nil
}

func (r *ShipmentRepository) GetByIDs(ctx context.Context, shipmentIDs []uuid.UUID) ([]*shipment.Shipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*shipment.Shipment, 0, len(shipmentIDs))
	seen := make(map[uuid.UUID]bool, len(shipmentIDs))
	for _, id := range shipmentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if s, ok := r.store.shipments[id]; ok {
			result = append(result, cloneShipment(s))
		}
	}
	return result, nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.shipments[s.ID]
	if !ok {
		return shipment.ErrShipmentNotFound
	}
	for id, other := range r.store.shipments {
		if id != s.ID && other.ShipmentNumber == s.ShipmentNumber {
			return duplicate("shipments_shipment_number_key")
		}
	}

	s.UpdatedAt = r.store.now()
	s.CreatedAt = existing.CreatedAt
	// invoice linkage is owned by LinkInvoice/UnlinkInvoice
	s.InvoiceID = copyUUID(existing.InvoiceID)
	r.store.shipments[s.ID] = cloneShipment(s)
	return nil
}

func (r *ShipmentRepository) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.shipments[shipmentID]; !ok {
		return shipment.ErrShipmentNotFound
	}
	delete(r.store.shipments, shipmentID)
	delete(r.store.order, shipmentID)
	return nil
}

func (r *ShipmentRepository) List(ctx context.Context, filter *shipment.Filter) ([]*shipment.Shipment, int64, error) {
	if filter == nil {
		filter = &shipment.Filter{}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]*shipment.Shipment, 0)
	for _, s := range r.store.shipments {
		if matchShipment(s, filter) {
			matches = append(matches, cloneShipment(s))
		}
	}

	asc := strings.ToLower(filter.SortOrder) == "asc"
	switch filter.SortBy {
	case "delivery_date":
		sort.SliceStable(matches, func(i, j int) bool {
			a, b := matches[i].DeliveryDate, matches[j].DeliveryDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			case asc:
				return a.Before(*b)
			default:
				return a.After(*b)
			}
		})
	case "shipment_number":
		sort.SliceStable(matches, func(i, j int) bool {
			if asc {
				return matches[i].ShipmentNumber < matches[j].ShipmentNumber
			}
			return matches[i].ShipmentNumber > matches[j].ShipmentNumber
		})
	default:
		sortByCreated(r.store, matches,
			func(s *shipment.Shipment) time.Time { return s.CreatedAt },
			func(s *shipment.Shipment) uuid.UUID { return s.ID }, asc)
	}

	total := int64(len(matches))
	return page(matches, filter.Page, filter.PageSize), total, nil
}

func matchShipment(s *shipment.Shipment, f *shipment.Filter) bool {
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	if f.DriverID != nil && (s.DriverID == nil || *s.DriverID != *f.DriverID) {
		return false
	}
	if f.CustomerID != nil && s.CustomerID != *f.CustomerID {
		return false
	}
	if f.InvoiceID != nil && (s.InvoiceID == nil || *s.InvoiceID != *f.InvoiceID) {
		return false
	}
	if f.Invoiced != nil && (s.InvoiceID != nil) != *f.Invoiced {
		return false
	}
	if f.DeliveryFrom != nil || f.DeliveryTo != nil {
		if s.DeliveryDate == nil {
			return false
		}
		if f.DeliveryFrom != nil && s.DeliveryDate.Before(*f.DeliveryFrom) {
			return false
		}
		if f.DeliveryTo != nil && s.DeliveryDate.After(*f.DeliveryTo) {
			return false
		}
	}
	if f.Search != "" {
		if !containsFold(s.ShipmentNumber, f.Search) &&
			!containsFold(s.Origin.City, f.Search) &&
			!containsFold(s.Destination.City, f.Search) {
			return false
		}
	}
	return true
}

func (r *ShipmentRepository) LinkInvoice(ctx context.Context, shipmentIDs []uuid.UUID, invoiceID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var linked int64
	now := r.store.now()
	for _, id := range shipmentIDs {
		s, ok := r.store.shipments[id]
		if !ok || s.InvoiceID != nil {
			continue
		}
		inv := invoiceID
		s.InvoiceID = &inv
		s.UpdatedAt = now
		linked++
	}
	return linked, nil
}

func (r *ShipmentRepository) UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var unlinked int64
	now := r.store.now()
	for _, s := range r.store.shipments {
		if s.InvoiceID != nil && *s.InvoiceID == invoiceID {
			s.InvoiceID = nil
			s.UpdatedAt = now
			unlinked++
		}
	}
	return unlinked, nil
}

func (r *ShipmentRepository) ListDated(ctx context.Context) ([]*shipment.Shipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*shipment.Shipment, 0)
	for _, s := range r.store.shipments {
		if s.DateFields().HasDates() {
			result = append(result, cloneShipment(s))
		}
	}
	sortByCreated(r.store, result,
		func(s *shipment.Shipment) time.Time { return s.CreatedAt },
		func(s *shipment.Shipment) uuid.UUID { return s.ID }, true)
	return result, nil
}

func (r *ShipmentRepository) UpdateDates(ctx context.Context, shipmentID uuid.UUID, dates shipment.DateFields) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.shipments[shipmentID]
	if !ok {
		return shipment.ErrShipmentNotFound
	}
	s.DeliveryDate = copyTime(dates.DeliveryDate)
	s.ActualPickupDate = copyTime(dates.ActualPickupDate)
	s.ActualDeliveryDate = copyTime(dates.ActualDeliveryDate)
	s.UpdatedAt = r.store.now()
	return nil
}
