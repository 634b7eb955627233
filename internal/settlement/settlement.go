package settlement

import (
	"fmt"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaxSplitPayments is the number of explicit split entries a
// settlement accepts before the final tender.
const DefaultMaxSplitPayments = 3

// State: Open → Complete → Finalized, or Open|Complete → Abandoned.
type State string

const (
	StateOpen      State = "open"
	StateComplete  State = "complete"
	StateFinalized State = "finalized"
	StateAbandoned State = "abandoned"
)

func (s State) Terminal() bool { return s == StateFinalized || s == StateAbandoned }

// IDSource issues transaction ids.
type IDSource interface {
	Next() string
}

// Recorder receives every finalized transaction exactly once.
type Recorder interface {
	RecordTransaction(tx Transaction)
}

// Config tunes a settlement. Zero values fall back to defaults.
type Config struct {
	MaxSplitPayments int
	Methods          []Method
	IDs              IDSource
	Now              func() time.Time
}

func (c Config) maxSplit() int {
	if c.MaxSplitPayments <= 0 {
		return DefaultMaxSplitPayments
	}
	return c.MaxSplitPayments
}

func (c Config) methods() []Method {
	if len(c.Methods) == 0 {
		return DefaultMethods
	}
	return c.Methods
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now()
}

func (c Config) nextID() string {
	if c.IDs == nil {
		return "TXN" + uuid.NewString()
	}
	return c.IDs.Next()
}

// Attribution is the display-only context stamped on a transaction.
type Attribution struct {
	CustomerID   string
	CustomerName string
	CashierID    string
	CashierName  string
	Notes        string
}

// Settlement tracks payments against an order whose total was frozen when
// the settlement was opened. It is not safe for concurrent use; one
// settlement belongs to one terminal.
type Settlement struct {
	id       uuid.UUID
	order    pricing.Order
	totals   pricing.Totals
	cfg      Config
	payments []Payment
	tender   *Payment
	state    State
	openedAt time.Time
}

// Open freezes the order's totals (rounded to two decimals) and starts
// accepting payments.
func Open(order pricing.Order, cfg Config) (*Settlement, error) {
	if order.IsEmpty() {
		return nil, ErrEmptyOrder
	}
	s := &Settlement{
		id:       uuid.New(),
		order:    order,
		totals:   order.Totals().Round(),
		cfg:      cfg,
		openedAt: cfg.now(),
	}
	s.refreshState()
	return s, nil
}

func (s *Settlement) ID() uuid.UUID          { return s.id }
func (s *Settlement) Order() pricing.Order   { return s.order }
func (s *Settlement) Totals() pricing.Totals { return s.totals }
func (s *Settlement) State() State           { return s.state }
func (s *Settlement) OpenedAt() time.Time    { return s.openedAt }

// GrandTotal is the amount owed, frozen at open time.
func (s *Settlement) GrandTotal() decimal.Decimal { return s.totals.GrandTotal }

// Payments returns the explicit split entries followed by the final tender.
func (s *Settlement) Payments() []Payment {
	out := make([]Payment, 0, len(s.payments)+1)
	out = append(out, s.payments...)
	if s.tender != nil {
		out = append(out, *s.tender)
	}
	return out
}

func (s *Settlement) AmountTendered() decimal.Decimal {
	return sumPayments(s.Payments())
}

// ChangeDue is max(0, tendered - total).
func (s *Settlement) ChangeDue() decimal.Decimal {
	change := s.AmountTendered().Sub(s.GrandTotal())
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// Remaining is max(0, total - tendered).
func (s *Settlement) Remaining() decimal.Decimal {
	rem := s.GrandTotal().Sub(s.AmountTendered())
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// SplitSlotsLeft reports how many explicit split entries can still be added.
func (s *Settlement) SplitSlotsLeft() int {
	return s.cfg.maxSplit() - len(s.payments)
}

// ── Payments ──────────────────────────────────────────────────────────────────

// AddPayment appends an explicit split entry.
func (s *Settlement) AddPayment(method Method, amount decimal.Decimal) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := s.cfg.checkPayment(method, amount); err != nil {
		return err
	}
	if len(s.payments) >= s.cfg.maxSplit() {
		return fmt.Errorf("%w: at most %d split payments", ErrPaymentCapExceeded, s.cfg.maxSplit())
	}
	s.payments = append(s.payments, Payment{Method: method, Amount: amount})
	s.refreshState()
	return nil
}

// Tender records what the payer handed over as the final payment. It may
// exceed the remaining balance; the excess is change. Tendering again
// replaces the previous tender.
func (s *Settlement) Tender(method Method, amount decimal.Decimal) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := s.cfg.checkPayment(method, amount); err != nil {
		return err
	}
	s.tender = &Payment{Method: method, Amount: amount, Final: true}
	s.refreshState()
	return nil
}

// PayRemaining tenders exactly the outstanding balance of the split entries.
func (s *Settlement) PayRemaining(method Method) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	rem := s.GrandTotal().Sub(sumPayments(s.payments))
	if !rem.IsPositive() {
		return fmt.Errorf("%w: nothing left to pay", ErrInvalidPayment)
	}
	return s.Tender(method, rem)
}

// RemovePayment drops the entry at index (as listed by Payments).
func (s *Settlement) RemovePayment(index int) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	switch {
	case index >= 0 && index < len(s.payments):
		s.payments = append(s.payments[:index:index], s.payments[index+1:]...)
	case index == len(s.payments) && s.tender != nil:
		s.tender = nil
	default:
		return fmt.Errorf("%w: index %d", ErrPaymentNotFound, index)
	}
	s.refreshState()
	return nil
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// Finalize closes a complete settlement, builds its Transaction and hands it
// to rec. rec is called at most once per settlement.
func (s *Settlement) Finalize(attr Attribution, rec Recorder) (Transaction, error) {
	if err := s.ensureOpen(); err != nil {
		return Transaction{}, err
	}
	if s.state != StateComplete {
		return Transaction{}, fmt.Errorf("%w: %s remaining", ErrIncompletePayment, s.Remaining().StringFixed(2))
	}

	tx, err := NewTransaction(TransactionParams{
		ID:             s.cfg.nextID(),
		SettlementID:   s.id,
		OrderID:        s.order.ID(),
		Timestamp:      s.cfg.now(),
		Attribution:    attr,
		Items:          s.order.Items(),
		OrderDiscount:  orderDiscount(s.order),
		TaxRate:        s.order.TaxRate(),
		Totals:         s.totals,
		Payments:       s.Payments(),
		AmountTendered: s.AmountTendered(),
		ChangeDue:      s.ChangeDue(),
	})
	if err != nil {
		return Transaction{}, err
	}

	s.state = StateFinalized
	if rec != nil {
		rec.RecordTransaction(tx)
	}
	return tx, nil
}

// Cancel abandons the settlement. No transaction is produced.
func (s *Settlement) Cancel() error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.state = StateAbandoned
	return nil
}

func (s *Settlement) ensureOpen() error {
	if s.state.Terminal() {
		return fmt.Errorf("%w: %s", ErrSettlementClosed, s.state)
	}
	return nil
}

func (s *Settlement) refreshState() {
	if s.AmountTendered().GreaterThanOrEqual(s.GrandTotal()) {
		s.state = StateComplete
		return
	}
	s.state = StateOpen
}

func orderDiscount(o pricing.Order) *pricing.Discount {
	if d, ok := o.Discount(); ok {
		return &d
	}
	return nil
}
