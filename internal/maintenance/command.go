package maintenance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"freight-backoffice/internal/config"
	"freight-backoffice/internal/database"
	"freight-backoffice/internal/logger"
	appErrors "freight-backoffice/pkg/errors"

	"go.uber.org/zap"
)

type Direction int

const (
	Forward Direction = iota
	Backward
)

// RunCommand boots config, logging and the store, shifts every stored date in
// the given direction and returns the process exit code.
func RunCommand(direction Direction) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		return 1
	}
	if err := logger.Init(cfg.Server.Environment); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		return 1
	}
	defer logger.Sync()

	db, err := database.NewDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Execute(ctx, NewDateShifter(db.Shipments, db.Invoices), direction, os.Stdout)
}

// Execute runs one shift and prints a summary. Any failed record makes the exit
// code non-zero.
func Execute(ctx context.Context, shifter *DateShifter, direction Direction, out io.Writer) int {
	run, label := shifter.Correct, "Correct"
	if direction == Backward {
		run, label = shifter.Undo, "Undo"
	}

	result, err := run(ctx)
	fmt.Fprintf(out, "%s: %d attempted, %d updated, %d failed\n",
		label, result.Attempted, result.Succeeded, len(result.Failed))
	for _, f := range result.Failed {
		fmt.Fprintf(out, "  %s %s: %s\n", f.Collection, f.ID, f.Reason)
	}

	if err == nil {
		return 0
	}

	var partial *appErrors.PartialFailure
	if !errors.As(err, &partial) {
		logger.Error("Date shift aborted", zap.Error(err))
	}
	return 1
}
