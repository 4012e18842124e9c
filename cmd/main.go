package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight-backoffice/internal/config"
	"freight-backoffice/internal/database"
	"freight-backoffice/internal/events"
	"freight-backoffice/internal/logger"
	"freight-backoffice/internal/routes"
	"freight-backoffice/pkg/mqtt"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("store", cfg.Database.Driver),
	)

	if cfg.Database.Driver == config.StoreDriverPostgres && (cfg.Database.Host == "" || cfg.Database.DBName == "") {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" && env == "production" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	publisher, err := events.Connect(mqtt.Config{
		Broker:               cfg.MQTT.Broker,
		ClientID:             cfg.MQTT.ClientID,
		Username:             cfg.MQTT.Username,
		Password:             cfg.MQTT.Password,
		CleanSession:         true,
		KeepAlive:            30,
		ConnectTimeout:       10,
		AutoReconnect:        true,
		MaxReconnectInterval: time.Minute,
	}, cfg.MQTT.TopicPrefix, byte(cfg.MQTT.QoS), logger.Logger)
	if err != nil {
		logger.Fatal("Failed to connect to MQTT broker", zap.Error(err))
	}
	defer publisher.Close()

	// Cancelled on shutdown to stop background work owned by the router.
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	router := routes.SetupRoutes(appCtx, cfg, db, publisher)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = server.Shutdown(ctx)
	stopApp()
	if err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
		return
	}

	logger.Info("Server exited properly")
}
