package invoice

import (
	"context"
	"sync"
	"testing"
	"time"

	domainInvoice "freight-backoffice/internal/domain/invoice"
	"freight-backoffice/internal/infrastructure/database/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingSequence(t *testing.T) {
	tests := []struct {
		number string
		want   int64
	}{
		{"INV-2025-0007", 7},
		{"INV-2024-0123", 123},
		{"INV-2025-12345", 12345},
		{"LEGACY", 0},
		{"", 0},
		{"INV-2025-0007-A", 0},
	}
	for _, tt := range tests {
		got, err := TrailingSequence(tt.number)
		require.NoError(t, err, tt.number)
		assert.Equal(t, tt.want, got, tt.number)
	}

	_, err := TrailingSequence("INV-2025-123456789012345678901")
	assert.Error(t, err)
}

func TestScanNumberGeneratorRejectsOverflowingSequence(t *testing.T) {
	store := memory.NewStore()
	seedInvoice(t, store, "INV-2025-99999999999999999999")

	gen := NewScanNumberGenerator(store.Invoices(), func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	})
	_, err := gen.Next(context.Background())
	assert.Error(t, err)
}

func seedInvoice(t *testing.T, store *memory.Store, number string) {
	t.Helper()
	inv := &domainInvoice.Invoice{InvoiceNumber: number, CustomerID: uuid.New(), InvoiceDate: time.Now()}
	require.NoError(t, store.Invoices().Create(context.Background(), inv))
}

func TestScanNumberGenerator(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	gen := NewScanNumberGenerator(store.Invoices(), clock)

	first, err := gen.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0001", first)

	seedInvoice(t, store, "INV-2025-0007")
	next, err := gen.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0008", next)

	// the scan does not reserve, so repeated calls agree
	again, err := gen.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, again)

	seedInvoice(t, store, "MANUAL")
	fallback, err := gen.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0001", fallback)
}

func TestSequenceNumberGenerator_ContinuesLegacyNumbering(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInvoice(t, store, "INV-2025-0007")

	gen := NewSequenceNumberGenerator(store.Invoices(), store.Sequences(), clock)

	first, err := gen.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0008", first)

	second, err := gen.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0009", second)
}

func TestSequenceNumberGenerator_UniqueUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	gen := NewSequenceNumberGenerator(store.Invoices(), store.Sequences(), clock)

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := gen.Next(ctx)
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for n := range results {
		assert.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2026-0042", FormatInvoiceNumber(2026, 42))
	assert.Equal(t, "INV-2026-10000", FormatInvoiceNumber(2026, 10000))
}
