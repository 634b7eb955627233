package service

import (
	"context"
	"sync"
	"testing"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Fixtures ──────────────────────────────────────────────────────────────────

type queuedReceipt struct {
	tx    settlement.Transaction
	email string
}

type captureQueue struct {
	mu   sync.Mutex
	jobs []queuedReceipt
}

func (q *captureQueue) EnqueueReceipt(_ context.Context, tx settlement.Transaction, email string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, queuedReceipt{tx: tx, email: email})
	return nil
}

type checkoutFixture struct {
	checkout CheckoutService
	register RegisterService
	receipts *captureQueue
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	reg := NewRegisterService(nil)
	q := &captureQueue{}
	co := NewCheckoutService(
		CheckoutConfig{TaxRate: decimal.RequireFromString("0.18")},
		NewCatalogService(repository.NewSeededCatalogRepository()),
		repository.NewCustomerRepository(repository.SeedCustomers()),
		repository.NewEmployeeRepository(repository.SeedEmployees()),
		reg, q, nil,
	)
	return &checkoutFixture{checkout: co, register: reg, receipts: q}
}

func (f *checkoutFixture) openRegister(t *testing.T, float int64) {
	t.Helper()
	_, err := f.register.Open(context.Background(), "e1", dto.OpenRegisterRequest{OpeningFloat: decimal.NewFromInt(float)})
	require.NoError(t, err)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var cashier = Cashier{ID: "e1", Name: "Sarah Johnson"}

// ── Cart ──────────────────────────────────────────────────────────────────────

func TestCart_AddItemMergesAndPrices(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1", EmployeeID: "e2"})
	require.NoError(t, err)
	cart, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1", EmployeeID: "e3"})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "e2", cart.Items[0].EmployeeID, "merged line keeps its stylist")
	assert.Equal(t, "service", cart.Items[0].Kind)
	assert.Equal(t, "1598.00", cart.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "1885.64", cart.Totals.GrandTotal.StringFixed(2))
	assert.False(t, cart.CheckoutOpen)
}

func TestCart_UpdateItemReassignsEmployee(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1"})
	require.NoError(t, err)
	cart, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1", EmployeeID: "e2"})
	require.NoError(t, err)
	assert.Empty(t, cart.Items[0].EmployeeID)

	cart, err = f.checkout.UpdateItem(ctx, "t1", "s1", dto.UpdateItemRequest{EmployeeID: ptr("e3"), Quantity: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "e3", cart.Items[0].EmployeeID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "799.00", cart.Items[0].UnitPrice.StringFixed(2))
}

func TestCart_RejectsUnknownReferences(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "nope"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1", EmployeeID: "e99"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.checkout.SetCustomer(ctx, "t1", dto.SetCustomerRequest{CustomerID: "c99"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.checkout.Cart(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCart_LineDiscountAndClear(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1"})
	require.NoError(t, err)
	cart, err := f.checkout.SetLineDiscount(ctx, "t1", "s1", dto.DiscountRequest{Amount: dec("10"), Mode: "percentage"})
	require.NoError(t, err)
	assert.Equal(t, "719.10", cart.Items[0].Total.StringFixed(2))
	assert.Equal(t, "848.54", cart.Totals.GrandTotal.StringFixed(2))

	_, err = f.checkout.SetCustomer(ctx, "t1", dto.SetCustomerRequest{CustomerID: "c2"})
	require.NoError(t, err)
	cart, err = f.checkout.ClearCart(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.CustomerID)
	assert.True(t, cart.Totals.GrandTotal.IsZero())
}

func TestCart_TerminalsAreIsolated(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "p1"})
	require.NoError(t, err)

	other, err := f.checkout.Cart(ctx, "t2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

// ── Checkout ──────────────────────────────────────────────────────────────────

func TestCheckout_EmptyCartCannotStart(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.checkout.StartCheckout(context.Background(), "t1")
	assert.ErrorIs(t, err, settlement.ErrEmptyOrder)
}

func TestCheckout_StartIsIdempotentAndLocksCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1"})
	require.NoError(t, err)
	first, err := f.checkout.StartCheckout(ctx, "t1")
	require.NoError(t, err)
	second, err := f.checkout.StartCheckout(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, first.SettlementID, second.SettlementID)
	assert.Equal(t, "942.82", first.Totals.GrandTotal.StringFixed(2))
	assert.Equal(t, settlement.DefaultMaxSplitPayments, first.SplitSlotsLeft)

	_, err = f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "p1"})
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	_, err = f.checkout.SetOrderDiscount(ctx, "t1", dto.DiscountRequest{Amount: dec("50"), Mode: "fixed"})
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	cart, err := f.checkout.Cart(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, cart.CheckoutOpen)
}

func TestCheckout_CancelKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1"})
	require.NoError(t, err)
	_, err = f.checkout.StartCheckout(ctx, "t1")
	require.NoError(t, err)

	cart, err := f.checkout.Cancel(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.False(t, cart.CheckoutOpen)

	_, err = f.checkout.Checkout(ctx, "t1")
	assert.ErrorIs(t, err, ErrNoSettlement)
	_, err = f.checkout.Cancel(ctx, "t1")
	assert.ErrorIs(t, err, ErrNoSettlement)

	_, err = f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "p1"})
	assert.NoError(t, err)
}

func TestCheckout_SplitPaymentFinalizes(t *testing.T) {
	f := newCheckoutFixture(t)
	f.openRegister(t, 1000)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1", EmployeeID: "e2"})
	require.NoError(t, err)
	_, err = f.checkout.SetCustomer(ctx, "t1", dto.SetCustomerRequest{CustomerID: "c1"})
	require.NoError(t, err)
	_, err = f.checkout.StartCheckout(ctx, "t1")
	require.NoError(t, err)

	co, err := f.checkout.AddPayment(ctx, "t1", dto.PaymentRequest{Method: "card", Amount: dec("400")})
	require.NoError(t, err)
	assert.Equal(t, "542.82", co.Remaining.StringFixed(2))

	co, err = f.checkout.Tender(ctx, "t1", dto.TenderRequest{Method: "cash", Amount: ptr(dec("600"))})
	require.NoError(t, err)
	assert.Equal(t, string(settlement.StateComplete), co.State)
	assert.Equal(t, "57.18", co.ChangeDue.StringFixed(2))

	tx, err := f.checkout.Finalize(ctx, "t1", cashier, dto.FinalizeRequest{Notes: " regular "})
	require.NoError(t, err)
	assert.Equal(t, "c1", tx.CustomerID)
	assert.Equal(t, "Emma Watson", tx.CustomerName)
	assert.Equal(t, "e1", tx.CashierID)
	assert.Equal(t, "regular", tx.Notes)
	assert.Len(t, tx.Payments, 2)

	cart, err := f.checkout.Cart(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.CustomerID)
	assert.False(t, cart.CheckoutOpen)

	require.Len(t, f.receipts.jobs, 1)
	assert.Equal(t, "emma@email.com", f.receipts.jobs[0].email)
	assert.Equal(t, tx.ID, f.receipts.jobs[0].tx.ID)

	report, err := f.register.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TransactionCount)
	assert.Equal(t, "942.82", report.TotalSales.StringFixed(2))
	assert.Equal(t, "1542.82", report.ExpectedCash.StringFixed(2))
}

func TestCheckout_FinalizeRequiresOpenRegister(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1"})
	require.NoError(t, err)
	_, err = f.checkout.StartCheckout(ctx, "t1")
	require.NoError(t, err)
	_, err = f.checkout.Tender(ctx, "t1", dto.TenderRequest{Method: "card"})
	require.NoError(t, err)

	_, err = f.checkout.Finalize(ctx, "t1", cashier, dto.FinalizeRequest{})
	assert.ErrorIs(t, err, ErrRegisterClosed)

	co, err := f.checkout.Checkout(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, string(settlement.StateComplete), co.State)
	assert.Empty(t, f.receipts.jobs)

	f.openRegister(t, 0)
	_, err = f.checkout.Finalize(ctx, "t1", cashier, dto.FinalizeRequest{})
	assert.NoError(t, err)
}

func TestCheckout_FinalizeIncompleteKeepsSettlement(t *testing.T) {
	f := newCheckoutFixture(t)
	f.openRegister(t, 0)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "s1"})
	require.NoError(t, err)
	_, err = f.checkout.StartCheckout(ctx, "t1")
	require.NoError(t, err)
	_, err = f.checkout.Tender(ctx, "t1", dto.TenderRequest{Method: "cash", Amount: ptr(dec("500"))})
	require.NoError(t, err)

	_, err = f.checkout.Finalize(ctx, "t1", cashier, dto.FinalizeRequest{})
	assert.ErrorIs(t, err, settlement.ErrIncompletePayment)

	co, err := f.checkout.RemovePayment(ctx, "t1", 0)
	require.NoError(t, err)
	assert.Empty(t, co.Payments)
	assert.Equal(t, "942.82", co.Remaining.StringFixed(2))

	_, err = f.checkout.RemovePayment(ctx, "t1", 5)
	assert.ErrorIs(t, err, settlement.ErrPaymentNotFound)
}

func TestCheckout_RejectsUnknownMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.AddItem(ctx, "t1", dto.AddItemRequest{CatalogID: "p1"})
	require.NoError(t, err)
	_, err = f.checkout.StartCheckout(ctx, "t1")
	require.NoError(t, err)

	_, err = f.checkout.AddPayment(ctx, "t1", dto.PaymentRequest{Method: "cheque", Amount: dec("10")})
	assert.ErrorIs(t, err, settlement.ErrInvalidPayment)
}

func ptr[T any](v T) *T { return &v }
