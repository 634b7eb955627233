package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/infra"
	"github.com/sandiprv9898/salon-flow-pos/internal/model"
	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const maxTerminalIDLength = 64

// Cashier is the authenticated employee finalizing a sale.
type Cashier struct {
	ID   string
	Name string
}

// ReceiptQueue accepts finalized transactions for asynchronous receipt
// rendering and delivery.
type ReceiptQueue interface {
	EnqueueReceipt(ctx context.Context, tx settlement.Transaction, email string) error
}

type CheckoutConfig struct {
	TaxRate          decimal.Decimal
	MaxSplitPayments int
	Methods          []settlement.Method
	IDs              settlement.IDSource
}

// CheckoutService owns one cart and at most one open settlement per
// terminal. Terminals share nothing but the catalog and the register.
type CheckoutService interface {
	Cart(ctx context.Context, terminalID string) (*dto.CartResponse, error)
	AddItem(ctx context.Context, terminalID string, req dto.AddItemRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, terminalID, itemID string, req dto.UpdateItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, terminalID, itemID string) (*dto.CartResponse, error)
	SetLineDiscount(ctx context.Context, terminalID, itemID string, req dto.DiscountRequest) (*dto.CartResponse, error)
	SetOrderDiscount(ctx context.Context, terminalID string, req dto.DiscountRequest) (*dto.CartResponse, error)
	SetCustomer(ctx context.Context, terminalID string, req dto.SetCustomerRequest) (*dto.CartResponse, error)
	ClearCart(ctx context.Context, terminalID string) (*dto.CartResponse, error)

	StartCheckout(ctx context.Context, terminalID string) (*dto.CheckoutResponse, error)
	Checkout(ctx context.Context, terminalID string) (*dto.CheckoutResponse, error)
	AddPayment(ctx context.Context, terminalID string, req dto.PaymentRequest) (*dto.CheckoutResponse, error)
	RemovePayment(ctx context.Context, terminalID string, index int) (*dto.CheckoutResponse, error)
	Tender(ctx context.Context, terminalID string, req dto.TenderRequest) (*dto.CheckoutResponse, error)
	Finalize(ctx context.Context, terminalID string, cashier Cashier, req dto.FinalizeRequest) (*dto.TransactionResponse, error)
	Cancel(ctx context.Context, terminalID string) (*dto.CartResponse, error)
}

type terminal struct {
	mu         sync.Mutex
	order      pricing.Order
	customer   *model.Customer
	settlement *settlement.Settlement
}

// checkingOut reports whether a settlement is in progress.
func (t *terminal) checkingOut() bool {
	return t.settlement != nil && !t.settlement.State().Terminal()
}

type checkoutService struct {
	cfg       CheckoutConfig
	catalog   CatalogService
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
	register  RegisterService
	receipts  ReceiptQueue
	metrics   *infra.Metrics

	mu        sync.RWMutex
	terminals map[string]*terminal
}

func NewCheckoutService(
	cfg CheckoutConfig,
	catalog CatalogService,
	customers repository.CustomerRepository,
	employees repository.EmployeeRepository,
	register RegisterService,
	receipts ReceiptQueue,
	metrics *infra.Metrics,
) CheckoutService {
	if cfg.MaxSplitPayments <= 0 {
		cfg.MaxSplitPayments = settlement.DefaultMaxSplitPayments
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = settlement.DefaultMethods
	}
	return &checkoutService{
		cfg:       cfg,
		catalog:   catalog,
		customers: customers,
		employees: employees,
		register:  register,
		receipts:  receipts,
		metrics:   metrics,
		terminals: make(map[string]*terminal),
	}
}

func (s *checkoutService) terminal(id string) (*terminal, error) {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxTerminalIDLength {
		return nil, fmt.Errorf("%w: terminal id", ErrInvalidInput)
	}

	s.mu.RLock()
	t, ok := s.terminals[id]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.terminals[id]; ok {
		return t, nil
	}
	t = &terminal{order: pricing.NewOrder(s.cfg.TaxRate)}
	s.terminals[id] = t
	return t, nil
}

// editCart runs fn on an unlocked cart and returns the resulting view.
func (s *checkoutService) editCart(terminalID string, fn func(t *terminal) error) (*dto.CartResponse, error) {
	t, err := s.terminal(terminalID)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.checkingOut() {
		return nil, ErrCheckoutInProgress
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	return cartResponse(terminalID, t), nil
}

// ── Cart ──────────────────────────────────────────────────────────────────────

func (s *checkoutService) Cart(_ context.Context, terminalID string) (*dto.CartResponse, error) {
	t, err := s.terminal(terminalID)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return cartResponse(terminalID, t), nil
}

func (s *checkoutService) AddItem(ctx context.Context, terminalID string, req dto.AddItemRequest) (*dto.CartResponse, error) {
	entry, err := s.catalog.Entry(ctx, req.CatalogID)
	if err != nil {
		return nil, err
	}
	if req.EmployeeID != "" {
		if _, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil {
			return nil, err
		}
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	return s.editCart(terminalID, func(t *terminal) error {
		_, merged := t.order.Item(entry.ID)
		next, err := t.order.AddItem(entry, qty)
		if err != nil {
			return err
		}
		// A merged line keeps the employee it already has.
		if req.EmployeeID != "" && !merged {
			emp := req.EmployeeID
			if next, err = next.UpdateItem(entry.ID, pricing.ItemUpdate{EmployeeID: &emp}); err != nil {
				return err
			}
		}
		t.order = next
		return nil
	})
}

func (s *checkoutService) UpdateItem(ctx context.Context, terminalID, itemID string, req dto.UpdateItemRequest) (*dto.CartResponse, error) {
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		if _, err := s.employees.FindByID(ctx, *req.EmployeeID); err != nil {
			return nil, err
		}
	}
	return s.editCart(terminalID, func(t *terminal) error {
		next, err := t.order.UpdateItem(itemID, pricing.ItemUpdate{
			Quantity:   req.Quantity,
			EmployeeID: req.EmployeeID,
		})
		if err != nil {
			return err
		}
		t.order = next
		return nil
	})
}

func (s *checkoutService) RemoveItem(_ context.Context, terminalID, itemID string) (*dto.CartResponse, error) {
	return s.editCart(terminalID, func(t *terminal) error {
		next, err := t.order.RemoveItem(itemID)
		if err != nil {
			return err
		}
		t.order = next
		return nil
	})
}

func (s *checkoutService) SetLineDiscount(_ context.Context, terminalID, itemID string, req dto.DiscountRequest) (*dto.CartResponse, error) {
	return s.editCart(terminalID, func(t *terminal) error {
		next, err := t.order.SetLineDiscount(itemID, req.Amount, pricing.DiscountMode(req.Mode))
		if err != nil {
			return err
		}
		t.order = next
		return nil
	})
}

func (s *checkoutService) SetOrderDiscount(_ context.Context, terminalID string, req dto.DiscountRequest) (*dto.CartResponse, error) {
	return s.editCart(terminalID, func(t *terminal) error {
		next, err := t.order.SetOrderDiscount(req.Amount, pricing.DiscountMode(req.Mode))
		if err != nil {
			return err
		}
		t.order = next
		return nil
	})
}

func (s *checkoutService) SetCustomer(ctx context.Context, terminalID string, req dto.SetCustomerRequest) (*dto.CartResponse, error) {
	var customer *model.Customer
	if req.CustomerID != "" {
		c, err := s.customers.FindByID(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}
		customer = c
	}
	return s.editCart(terminalID, func(t *terminal) error {
		t.customer = customer
		return nil
	})
}

// ClearCart empties the cart and forgets the customer.
func (s *checkoutService) ClearCart(_ context.Context, terminalID string) (*dto.CartResponse, error) {
	return s.editCart(terminalID, func(t *terminal) error {
		t.order = t.order.Clear()
		t.customer = nil
		return nil
	})
}

// ── Checkout ──────────────────────────────────────────────────────────────────

// StartCheckout freezes the cart total and opens a settlement. Calling it
// again while a settlement is open returns that settlement.
func (s *checkoutService) StartCheckout(_ context.Context, terminalID string) (*dto.CheckoutResponse, error) {
	t, err := s.terminal(terminalID)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.checkingOut() {
		return checkoutResponse(terminalID, t.settlement, s.cfg.Methods), nil
	}
	st, err := settlement.Open(t.order, settlement.Config{
		MaxSplitPayments: s.cfg.MaxSplitPayments,
		Methods:          s.cfg.Methods,
		IDs:              s.cfg.IDs,
	})
	if err != nil {
		return nil, err
	}
	t.settlement = st
	s.metrics.ObserveSettlement("opened")
	log.Debug().Str("terminal_id", terminalID).Str("settlement_id", st.ID().String()).
		Str("grand_total", st.GrandTotal().StringFixed(2)).Msg("checkout started")
	return checkoutResponse(terminalID, st, s.cfg.Methods), nil
}

func (s *checkoutService) Checkout(_ context.Context, terminalID string) (*dto.CheckoutResponse, error) {
	var resp *dto.CheckoutResponse
	err := s.withSettlement(terminalID, func(_ *terminal, st *settlement.Settlement) error {
		resp = checkoutResponse(terminalID, st, s.cfg.Methods)
		return nil
	})
	return resp, err
}

func (s *checkoutService) AddPayment(_ context.Context, terminalID string, req dto.PaymentRequest) (*dto.CheckoutResponse, error) {
	return s.mutateSettlement(terminalID, func(st *settlement.Settlement) error {
		return st.AddPayment(settlement.Method(req.Method), req.Amount)
	})
}

func (s *checkoutService) RemovePayment(_ context.Context, terminalID string, index int) (*dto.CheckoutResponse, error) {
	return s.mutateSettlement(terminalID, func(st *settlement.Settlement) error {
		return st.RemovePayment(index)
	})
}

func (s *checkoutService) Tender(_ context.Context, terminalID string, req dto.TenderRequest) (*dto.CheckoutResponse, error) {
	return s.mutateSettlement(terminalID, func(st *settlement.Settlement) error {
		if req.Amount == nil {
			return st.PayRemaining(settlement.Method(req.Method))
		}
		return st.Tender(settlement.Method(req.Method), *req.Amount)
	})
}

// Finalize records the sale in the open register and resets the terminal
// for the next customer. The receipt is produced asynchronously; a failure
// to enqueue it never fails the sale.
func (s *checkoutService) Finalize(ctx context.Context, terminalID string, cashier Cashier, req dto.FinalizeRequest) (*dto.TransactionResponse, error) {
	var (
		tx    settlement.Transaction
		email string
	)
	err := s.withSettlement(terminalID, func(t *terminal, st *settlement.Settlement) error {
		attr := settlement.Attribution{
			CashierID:   cashier.ID,
			CashierName: cashier.Name,
			Notes:       strings.TrimSpace(req.Notes),
		}
		if t.customer != nil {
			attr.CustomerID = t.customer.ID
			attr.CustomerName = t.customer.Name
			email = t.customer.Email
		}

		if err := s.register.Settle(func(rec settlement.Recorder) error {
			var err error
			tx, err = st.Finalize(attr, rec)
			return err
		}); err != nil {
			return err
		}

		t.order = pricing.NewOrder(s.cfg.TaxRate)
		t.customer = nil
		t.settlement = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSettlement("finalized")
	log.Info().Str("terminal_id", terminalID).Str("transaction_id", tx.ID).
		Str("cashier_id", cashier.ID).Str("total", tx.Total().StringFixed(2)).Msg("sale finalized")

	if s.receipts != nil {
		if err := s.receipts.EnqueueReceipt(ctx, tx, email); err != nil {
			log.Error().Err(err).Str("transaction_id", tx.ID).Msg("failed to enqueue receipt")
		}
	}
	return transactionResponse(tx), nil
}

// Cancel abandons the settlement and unlocks the cart, which keeps its items.
func (s *checkoutService) Cancel(_ context.Context, terminalID string) (*dto.CartResponse, error) {
	var resp *dto.CartResponse
	err := s.withSettlement(terminalID, func(t *terminal, st *settlement.Settlement) error {
		if err := st.Cancel(); err != nil {
			return err
		}
		t.settlement = nil
		resp = cartResponse(terminalID, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveSettlement("abandoned")
	log.Debug().Str("terminal_id", terminalID).Msg("checkout cancelled")
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *checkoutService) withSettlement(terminalID string, fn func(t *terminal, st *settlement.Settlement) error) error {
	t, err := s.terminal(terminalID)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.checkingOut() {
		return ErrNoSettlement
	}
	return fn(t, t.settlement)
}

func (s *checkoutService) mutateSettlement(terminalID string, fn func(st *settlement.Settlement) error) (*dto.CheckoutResponse, error) {
	var resp *dto.CheckoutResponse
	err := s.withSettlement(terminalID, func(_ *terminal, st *settlement.Settlement) error {
		if err := fn(st); err != nil {
			return err
		}
		resp = checkoutResponse(terminalID, st, s.cfg.Methods)
		return nil
	})
	return resp, err
}
