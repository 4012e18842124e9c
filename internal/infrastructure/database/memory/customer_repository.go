package memory

import (
	"context"
	"sort"
	"strings"

	"freight-backoffice/internal/domain/customer"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) uniqueViolation(c *customer.Customer) error {
	for id, existing := range r.store.customers {
		if id == c.ID {
			continue
		}
		if strings.EqualFold(existing.Name, c.Name) {
			return duplicate("customers_name_key")
		}
		if existing.Code == c.Code {
			return duplicate("customers_code_key")
		}
	}
	return nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c.ID = uuid.New()
	if err := r.uniqueViolation(c); err != nil {
		return err
	}

	now := r.store.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.store.customers[c.ID] = cloneCustomer(c)
	r.store.track(c.ID)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID uuid.UUID) (*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.customers[customerID]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return cloneCustomer(c), nil
}

func (r *CustomerRepository) GetByIDs(ctx context.Context, customerIDs []uuid.UUID) ([]*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*customer.Customer, 0, len(customerIDs))
	for _, id := range customerIDs {
		if c, ok := r.store.customers[id]; ok {
			result = append(result, cloneCustomer(c))
		}
	}
	return result, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.customers[c.ID]
	if !ok {
		return customer.ErrCustomerNotFound
	}
	if err := r.uniqueViolation(c); err != nil {
		return err
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.store.now()
	r.store.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[customerID]; !ok {
		return customer.ErrCustomerNotFound
	}
	delete(r.store.customers, customerID)
	return nil
}

func (r *CustomerRepository) List(ctx context.Context, filter *customer.Filter) ([]*customer.Customer, int64, error) {
	if filter == nil {
		filter = &customer.Filter{}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]*customer.Customer, 0)
	for _, c := range r.store.customers {
		if filter.Search != "" && !containsFold(c.Name, filter.Search) && !containsFold(c.Code, filter.Search) {
			continue
		}
		matches = append(matches, cloneCustomer(c))
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })

	total := int64(len(matches))
	return page(matches, filter.Page, filter.PageSize), total, nil
}
