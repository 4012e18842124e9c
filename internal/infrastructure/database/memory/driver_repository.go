package memory

import (
	"context"
	"sort"

	"freight-backoffice/internal/domain/driver"

	"github.com/google/uuid"
)

type DriverRepository struct {
	store *Store
}

func (r *DriverRepository) Create(ctx context.Context, d *driver.Driver) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.employeeTaken(uuid.Nil, d.EmployeeID) {
		return duplicate("drivers_employee_id_key")
	}

	now := r.store.now()
	d.ID = uuid.New()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.Status == "" {
		d.Status = driver.StatusActive
	}

	r.store.drivers[d.ID] = cloneDriver(d)
	r.store.track(d.ID)
	return nil
}

func (r *DriverRepository) employeeTaken(self uuid.UUID, employeeID string) bool {
	for id, existing := range r.store.drivers {
		if id != self && existing.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID uuid.UUID) (*driver.Driver, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	d, ok := r.store.drivers[driverID]
	if !ok {
		return nil, driver.ErrDriverNotFound
	}
	return cloneDriver(d), nil
}

func (r *DriverRepository) GetByIDs(ctx context.Context, driverIDs []uuid.UUID) ([]*driver.Driver, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*driver.Driver, 0, len(driverIDs))
	for _, id := range driverIDs {
		if d, ok := r.store.drivers[id]; ok {
			result = append(result, cloneDriver(d))
		}
	}
	return result, nil
}

func (r *DriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.drivers[d.ID]
	if !ok {
		return driver.ErrDriverNotFound
	}
	if r.employeeTaken(d.ID, d.EmployeeID) {
		return duplicate("drivers_employee_id_key")
	}

	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = r.store.now()
	r.store.drivers[d.ID] = cloneDriver(d)
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, driverID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.drivers[driverID]; !ok {
		return driver.ErrDriverNotFound
	}
	delete(r.store.drivers, driverID)
	return nil
}

func (r *DriverRepository) List(ctx context.Context, filter *driver.Filter) ([]*driver.Driver, int64, error) {
	if filter == nil {
		filter = &driver.Filter{}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]*driver.Driver, 0)
	for _, d := range r.store.drivers {
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !containsFold(d.FullName(), filter.Search) &&
			!containsFold(d.EmployeeID, filter.Search) && !containsFold(d.TruckNumber, filter.Search) {
			continue
		}
		matches = append(matches, cloneDriver(d))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].LastName != matches[j].LastName {
			return matches[i].LastName < matches[j].LastName
		}
		return matches[i].FirstName < matches[j].FirstName
	})

	total := int64(len(matches))
	return page(matches, filter.Page, filter.PageSize), total, nil
}
