package memory

import (
	"context"
	"strings"
	"time"

	"freight-backoffice/internal/domain/invoice"

	"github.com/google/uuid"
)

type InvoiceRepository struct {
	store *Store
}

func (r *InvoiceRepository) numberTaken(self uuid.UUID, number string) bool {
	for id, existing := range r.store.invoices {
		if id != self && existing.InvoiceNumber == number {
			return true
		}
	}
	return false
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.numberTaken(uuid.Nil, inv.InvoiceNumber) {
		return duplicate("invoices_invoice_number_key")
	}

	now := r.store.now()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = invoice.StatusDraft
	}

	r.store.invoices[inv.ID] = cloneInvoice(inv)
	r.store.track(inv.ID)
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID uuid.UUID) (*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	inv, ok := r.store.invoices[invoiceID]
	if !ok {
		return nil, invoice.ErrInvoiceNotFound
	}
	return cloneInvoice(inv), nil
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, inv := range r.store.invoices {
		if inv.InvoiceNumber == invoiceNumber {
			return cloneInvoice(inv), nil
		}
	}
	return nil, invoice.ErrInvoiceNotFound
}

func (r *InvoiceRepository) GetLatest(ctx context.Context) (*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*invoice.Invoice, 0, len(r.store.invoices))
	for _, inv := range r.store.invoices {
		all = append(all, inv)
	}
	if len(all) == 0 {
		return nil, invoice.ErrInvoiceNotFound
	}
	r.sortNewestFirst(all)
	return cloneInvoice(all[0]), nil
}

func (r *InvoiceRepository) sortNewestFirst(items []*invoice.Invoice) {
	sortByCreated(r.store, items,
		func(inv *invoice.Invoice) time.Time { return inv.CreatedAt },
		func(inv *invoice.Invoice) uuid.UUID { return inv.ID }, false)
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.invoices[inv.ID]
	if !ok {
		return invoice.ErrInvoiceNotFound
	}
	if r.numberTaken(inv.ID, inv.InvoiceNumber) {
		return duplicate("invoices_invoice_number_key")
	}

	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = r.store.now()
	r.store.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.invoices[invoiceID]; !ok {
		return invoice.ErrInvoiceNotFound
	}
	delete(r.store.invoices, invoiceID)
	delete(r.store.order, invoiceID)
	return nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter *invoice.Filter) ([]*invoice.Invoice, int64, error) {
	if filter == nil {
		filter = &invoice.Filter{}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]*invoice.Invoice, 0)
	for _, inv := range r.store.invoices {
		if filter.CustomerID != nil && inv.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		if filter.InvoiceFrom != nil && inv.InvoiceDate.Before(*filter.InvoiceFrom) {
			continue
		}
		if filter.InvoiceTo != nil && inv.InvoiceDate.After(*filter.InvoiceTo) {
			continue
		}
		matches = append(matches, cloneInvoice(inv))
	}

	sortByCreated(r.store, matches,
		func(inv *invoice.Invoice) time.Time { return inv.CreatedAt },
		func(inv *invoice.Invoice) uuid.UUID { return inv.ID },
		strings.ToLower(filter.SortOrder) == "asc")

	total := int64(len(matches))
	return page(matches, filter.Page, filter.PageSize), total, nil
}

func (r *InvoiceRepository) ListDated(ctx context.Context) ([]*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*invoice.Invoice, 0)
	for _, inv := range r.store.invoices {
		if inv.DueDate != nil {
			result = append(result, cloneInvoice(inv))
		}
	}
	sortByCreated(r.store, result,
		func(inv *invoice.Invoice) time.Time { return inv.CreatedAt },
		func(inv *invoice.Invoice) uuid.UUID { return inv.ID }, true)
	return result, nil
}

func (r *InvoiceRepository) UpdateDueDate(ctx context.Context, invoiceID uuid.UUID, dueDate *time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	inv, ok := r.store.invoices[invoiceID]
	if !ok {
		return invoice.ErrInvoiceNotFound
	}
	inv.DueDate = copyTime(dueDate)
	inv.UpdatedAt = r.store.now()
	return nil
}

type SequenceRepository struct {
	store *Store
}

func (r *SequenceRepository) NextValue(ctx context.Context, name string, seed int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.sequences[name]
	if !ok {
		current = seed
	}
	current++
	r.store.sequences[name] = current
	return current, nil
}
