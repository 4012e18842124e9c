package routes

import (
	"context"
	"net/http"
	"time"

	"freight-backoffice/internal/config"
	"freight-backoffice/internal/database"
	"freight-backoffice/internal/delivery/http/handler"
	"freight-backoffice/internal/events"
	"freight-backoffice/internal/logger"
	"freight-backoffice/internal/middleware"
	"freight-backoffice/internal/usecase/customer"
	"freight-backoffice/internal/usecase/driver"
	"freight-backoffice/internal/usecase/invoice"
	"freight-backoffice/internal/usecase/reporting"
	"freight-backoffice/internal/usecase/shipment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes builds the engine. Background work started for the router, such as
// the rate limiter sweeper, ends when ctx is cancelled.
func SetupRoutes(ctx context.Context, cfg *config.Config, db *database.Database, publisher events.Publisher) *gin.Engine {
	production := cfg.Server.Environment == "production"
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(production))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes))
	router.Use(middleware.NewRateLimiter(ctx, cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst).Middleware())

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	shipmentService := shipment.NewService(db.Shipments, db.Drivers, db.Customers)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)

	driverService := driver.NewService(db.Drivers)
	driverHandler := handler.NewDriverHandler(driverService)

	customerService := customer.NewService(db.Customers, db.Invoices)
	customerHandler := handler.NewCustomerHandler(customerService)

	invoiceService := invoice.NewService(
		db.Invoices,
		db.Shipments,
		db.Customers,
		numberGenerator(cfg, db),
		publisher,
		cfg.Invoice.DueDays,
	)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	reportService := reporting.NewService(db.Shipments, db.Drivers, db.Customers, db.Invoices, cfg.Report.CompanyName)
	reportHandler := handler.NewReportHandler(reportService)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			shipmentHandler.RegisterRoutes(protected)
			driverHandler.RegisterRoutes(protected)
			customerHandler.RegisterRoutes(protected)
			invoiceHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				invoiceHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized",
		zap.String("store", cfg.Database.Driver),
		zap.String("invoice_numbering", cfg.Invoice.NumberingMode),
	)
	return router
}

func numberGenerator(cfg *config.Config, db *database.Database) invoice.NumberGenerator {
	if cfg.Invoice.NumberingMode == config.NumberingModeScan {
		return invoice.NewScanNumberGenerator(db.Invoices, time.Now)
	}
	return invoice.NewSequenceNumberGenerator(db.Invoices, db.Sequences, time.Now)
}
