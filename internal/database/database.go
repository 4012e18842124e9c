// Package database opens the configured store and hands out its repositories.
package database

import (
	"fmt"

	"freight-backoffice/internal/config"
	"freight-backoffice/internal/domain/customer"
	"freight-backoffice/internal/domain/driver"
	"freight-backoffice/internal/domain/invoice"
	"freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/infrastructure/database/memory"
	"freight-backoffice/internal/infrastructure/database/postgres"
	"freight-backoffice/internal/logger"

	"go.uber.org/zap"
)

type Database struct {
	Shipments shipment.Repository
	Drivers   driver.Repository
	Customers customer.Repository
	Invoices  invoice.Repository
	Sequences invoice.SequenceRepository

	health func() error
	close  func() error
}

func NewDatabase(cfg *config.Config) (*Database, error) {
	switch cfg.Database.Driver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store; data is lost on exit",
			zap.String("driver", cfg.Database.Driver),
		)
		return NewMemory(memory.NewStore()), nil

	case config.StoreDriverPostgres:
		db, err := postgres.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Database{
			Shipments: postgres.NewShipmentRepository(db),
			Drivers:   postgres.NewDriverRepository(db),
			Customers: postgres.NewCustomerRepository(db),
			Invoices:  postgres.NewInvoiceRepository(db),
			Sequences: postgres.NewSequenceRepository(db),
			health:    db.Health,
			close:     db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unsupported store driver %q", cfg.Database.Driver)
}

// NewMemory wraps an existing memory store, e.g. one a test has seeded.
func NewMemory(store *memory.Store) *Database {
	return &Database{
		Shipments: store.Shipments(),
		Drivers:   store.Drivers(),
		Customers: store.Customers(),
		Invoices:  store.Invoices(),
		Sequences: store.Sequences(),
		health:    store.Health,
		close:     store.Close,
	}
}

func (d *Database) Close() error {
	return d.close()
}

func (d *Database) Health() error {
	return d.health()
}
