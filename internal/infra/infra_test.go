package infra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Circuit breaker ───────────────────────────────────────────────────────────

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestBreaker(clock *fakeClock) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "test",
		FailureThreshold: 2,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
		Now:              clock.Now,
	})
}

func TestCircuitBreaker_TripsAndRecovers(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC)}
	cb := newTestBreaker(clock)
	boom := errors.New("smtp down")

	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, CBClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	clock.t = clock.t.Add(time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC)}
	cb := newTestBreaker(clock)
	boom := errors.New("smtp down")
	_ = cb.Execute(func() error { return boom })
	_ = cb.Execute(func() error { return boom })

	clock.t = clock.t.Add(2 * time.Minute)
	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := newTestBreaker(&fakeClock{t: time.Now()})
	boom := errors.New("x")
	_ = cb.Execute(func() error { return boom })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return boom })
	assert.Equal(t, CBClosed, cb.State())
}

// ── Receipts & metrics ────────────────────────────────────────────────────────

func sampleTransaction(t *testing.T) settlement.Transaction {
	t.Helper()
	o, err := pricing.NewOrder(decimal.RequireFromString("0.18")).AddItem(pricing.CatalogEntry{
		ID: "s1", Name: "Haircut & Styling", Kind: pricing.KindService, UnitPrice: decimal.NewFromInt(799),
	}, 1)
	require.NoError(t, err)
	s, err := settlement.Open(o, settlement.Config{})
	require.NoError(t, err)
	require.NoError(t, s.AddPayment(settlement.MethodCard, decimal.NewFromInt(400)))
	require.NoError(t, s.Tender(settlement.MethodCash, decimal.NewFromInt(600)))
	tx, err := s.Finalize(settlement.Attribution{CustomerName: "John Smith", CashierName: "Sarah Johnson"}, nil)
	require.NoError(t, err)
	return tx
}

func TestGenerateReceiptPDF(t *testing.T) {
	tx := sampleTransaction(t)
	dir := t.TempDir()

	path, err := GenerateReceiptPDF(tx, "Salon Flow", filepath.Join(dir, "receipts"))
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, filepath.Join(dir, "receipts"), filepath.Dir(path))
}

func TestMetrics_ObserveTransaction(t *testing.T) {
	m := NewMetrics("salonpos")
	tx := sampleTransaction(t)

	m.ObserveTransaction(tx)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransactionsTotal))
	// 799 * 1.18 = 942.82; tendered 1000, change 57.18
	assert.InDelta(t, 942.82, testutil.ToFloat64(m.SalesAmount), 0.001)
	assert.InDelta(t, 57.18, testutil.ToFloat64(m.ChangeGiven), 0.001)
	assert.InDelta(t, 400.0, testutil.ToFloat64(m.PaymentsByMethod.WithLabelValues("card")), 0.001)
	assert.InDelta(t, 542.82, testutil.ToFloat64(m.PaymentsByMethod.WithLabelValues("cash")), 0.001)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSettlement("opened")
		m.ObserveReceipt("ok")
		m.SetRegisterOpen(true)
		m.ObserveRequest("GET", "/health", "200", 1)
	})
}
