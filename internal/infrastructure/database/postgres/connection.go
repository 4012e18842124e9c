package postgres

import (
	"fmt"
	"time"

	"freight-backoffice/internal/config"
	"freight-backoffice/internal/infrastructure/database/postgres/models"
	"freight-backoffice/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

func NewDB(cfg *config.Config) (*DB, error) {
	dsn := cfg.Database.DSN()

	var gormLogLevel gormLogger.LogLevel
	if cfg.Server.Environment == "production" {
		gormLogLevel = gormLogger.Warn
	} else {
		gormLogLevel = gormLogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
		zap.Int("max_open_connections", 25),
		zap.Int("max_idle_connections", 5),
	)

	return &DB{DB: db}, nil
}

// Migrate creates or updates every table the repositories use.
func (d *DB) Migrate() error {
	err := d.DB.AutoMigrate(
		&models.CustomerModel{},
		&models.DriverModel{},
		&models.ShipmentModel{},
		&models.InvoiceModel{},
		&models.InvoiceShipmentModel{},
		&models.SequenceModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// customer names are unique regardless of case
	if err := d.DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS customers_name_key ON customers (lower(name))`).Error; err != nil {
		return fmt.Errorf("failed to create customer name index: %w", err)
	}

	logger.Info("Database schema migrated")
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
