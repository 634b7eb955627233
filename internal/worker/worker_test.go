package worker

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/infra"
	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTx(t *testing.T) settlement.Transaction {
	t.Helper()
	o, err := pricing.NewOrder(decimal.RequireFromString("0.18")).AddItem(pricing.CatalogEntry{
		ID: "p1", Name: "Professional Shampoo", Kind: pricing.KindProduct, UnitPrice: decimal.NewFromInt(299),
	}, 2)
	require.NoError(t, err)
	s, err := settlement.Open(o, settlement.Config{})
	require.NoError(t, err)
	require.NoError(t, s.Tender(settlement.MethodCash, decimal.NewFromInt(1000)))
	tx, err := s.Finalize(settlement.Attribution{CustomerName: "Emma Watson"}, nil)
	require.NoError(t, err)
	return tx
}

type fakeSender struct {
	mu    sync.Mutex
	err   error
	sent  []string
	paths []string
}

func (f *fakeSender) SendReceipt(to, _, _, pdfPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	f.paths = append(f.paths, pdfPath)
	return nil
}

// ── Receipt worker ────────────────────────────────────────────────────────────

func TestReceiptWorker_RendersAndSends(t *testing.T) {
	sender := &fakeSender{}
	m := infra.NewMetrics("test")
	w := NewReceiptWorker("Salon Flow", t.TempDir(), sender, nil, m)

	require.NoError(t, w.Process(context.Background(), ReceiptJob{Tx: sampleTx(t), Email: "emma@email.com"}))
	require.Equal(t, []string{"emma@email.com"}, sender.sent)
	_, err := os.Stat(sender.paths[0])
	assert.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReceiptJobs.WithLabelValues("sent")))
}

func TestReceiptWorker_NoEmailOnlyRenders(t *testing.T) {
	sender := &fakeSender{}
	m := infra.NewMetrics("test")
	w := NewReceiptWorker("Salon Flow", t.TempDir(), sender, nil, m)

	require.NoError(t, w.Process(context.Background(), ReceiptJob{Tx: sampleTx(t)}))
	assert.Empty(t, sender.sent)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReceiptJobs.WithLabelValues("rendered")))
}

func TestReceiptWorker_BreakerOpensAfterFailures(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Name: "smtp", FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Hour})
	w := NewReceiptWorker("Salon Flow", t.TempDir(), sender, cb, nil)
	job := ReceiptJob{Tx: sampleTx(t), Email: "emma@email.com"}

	assert.Error(t, w.Process(context.Background(), job))
	assert.Error(t, w.Process(context.Background(), job))
	assert.Equal(t, infra.CBOpen, cb.State())

	err := w.Process(context.Background(), job)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
}

// ── Dispatcher ────────────────────────────────────────────────────────────────

func TestDispatcher_ProcessesAndDrains(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	d := NewDispatcher(8, func(_ context.Context, job ReceiptJob) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, job.Tx.ID)
		return nil
	}, nil)

	ctx := context.Background()
	d.Start(ctx, 2)
	tx := sampleTx(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, d.EnqueueReceipt(ctx, tx, ""))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(shutdownCtx))
	assert.Len(t, seen, 5)

	assert.ErrorIs(t, d.EnqueueReceipt(ctx, tx, ""), ErrQueueClosed)
}

func TestDispatcher_FullQueueRejects(t *testing.T) {
	d := NewDispatcher(1, func(context.Context, ReceiptJob) error { return nil }, nil)
	tx := sampleTx(t)
	require.NoError(t, d.EnqueueReceipt(context.Background(), tx, ""))
	assert.ErrorIs(t, d.EnqueueReceipt(context.Background(), tx, ""), ErrQueueFull)
	assert.Equal(t, 1, d.Len())
}

func TestDispatcher_FailuresGoToDLQ(t *testing.T) {
	dlq := NewDeadLetterQueue(10)
	d := NewDispatcher(4, func(context.Context, ReceiptJob) error { return errors.New("boom") }, dlq)
	ctx := context.Background()
	d.Start(ctx, 1)
	require.NoError(t, d.EnqueueReceipt(ctx, sampleTx(t), "x@y.z"))

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(shutdownCtx))

	entries := dlq.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].Reason)
	assert.Equal(t, 1, entries[0].Attempts)
}

// ── DLQ and retry ─────────────────────────────────────────────────────────────

func TestDeadLetterQueue_EvictsOldest(t *testing.T) {
	dlq := NewDeadLetterQueue(2)
	tx := sampleTx(t)
	for _, id := range []string{"a", "b", "c"} {
		job := ReceiptJob{Tx: tx}
		job.Tx.ID = id
		dlq.Push(job, "failed")
	}
	entries := dlq.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].TxID)
	assert.Equal(t, "c", entries[1].TxID)
}

func TestRetryOnce(t *testing.T) {
	dlq := NewDeadLetterQueue(10)
	d := NewDispatcher(10, func(context.Context, ReceiptJob) error { return nil }, dlq)
	tx := sampleTx(t)

	dlq.Push(ReceiptJob{Tx: tx, Attempts: 1}, "smtp down")
	dlq.Push(ReceiptJob{Tx: tx, Attempts: MaxReceiptAttempts}, "smtp down")

	n := retryOnce(context.Background(), RetryCronConfig{Dispatcher: d, DLQ: dlq})
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 1, dlq.Len())
}

func TestRetryOnce_SkipsWhileCircuitOpen(t *testing.T) {
	dlq := NewDeadLetterQueue(10)
	d := NewDispatcher(10, func(context.Context, ReceiptJob) error { return nil }, dlq)
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Name: "smtp", FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: time.Hour})
	_ = cb.Execute(func() error { return errors.New("down") })
	require.Equal(t, infra.CBOpen, cb.State())

	dlq.Push(ReceiptJob{Tx: sampleTx(t), Attempts: 1}, "smtp down")
	assert.Zero(t, retryOnce(context.Background(), RetryCronConfig{Dispatcher: d, DLQ: dlq, CB: cb}))
	assert.Equal(t, 1, dlq.Len())
}
