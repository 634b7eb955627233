package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/infra"
	"github.com/sandiprv9898/salon-flow-pos/internal/model"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RegisterService is the cash register session and the sink of every
// finalized transaction.
type RegisterService interface {
	settlement.Recorder
	Open(ctx context.Context, openedBy string, req dto.OpenRegisterRequest) (*dto.RegisterReport, error)
	Close(ctx context.Context, req dto.CloseRegisterRequest) (*dto.RegisterReport, error)
	Report(ctx context.Context) (*dto.RegisterReport, error)
	IsOpen() bool
	// Settle runs fn while holding the register, failing with
	// ErrRegisterClosed when no session is open. Transactions recorded
	// through the Recorder passed to fn land in the open session.
	Settle(fn func(rec settlement.Recorder) error) error
	Transactions(ctx context.Context) ([]settlement.Transaction, error)
	Journal(ctx context.Context) ([]model.JournalEntry, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type registerService struct {
	mu      sync.Mutex
	session *model.RegisterSession
	txs     []settlement.Transaction
	metrics *infra.Metrics
	now     func() time.Time
}

func NewRegisterService(metrics *infra.Metrics) RegisterService {
	return &registerService{metrics: metrics, now: func() time.Time { return time.Now().UTC() }}
}

// ── Open ──────────────────────────────────────────────────────────────────────
// A new session starts with an empty journal.

func (s *registerService) Open(_ context.Context, openedBy string, req dto.OpenRegisterRequest) (*dto.RegisterReport, error) {
	if req.OpeningFloat.IsNegative() {
		return nil, fmt.Errorf("%w: opening float must not be negative", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil && s.session.Status == model.RegisterOpen {
		return nil, ErrRegisterAlreadyOpen
	}
	s.session = &model.RegisterSession{
		ID:           uuid.New(),
		OpenedBy:     openedBy,
		OpeningFloat: req.OpeningFloat,
		Status:       model.RegisterOpen,
		OpenedAt:     s.now(),
	}
	s.txs = nil
	s.metrics.SetRegisterOpen(true)

	log.Info().Str("session_id", s.session.ID.String()).Str("opened_by", openedBy).
		Str("opening_float", req.OpeningFloat.StringFixed(2)).Msg("register opened")
	return s.reportLocked(), nil
}

// ── Close ─────────────────────────────────────────────────────────────────────
// Blind count on cash: the deviation is computed after the declaration.
// Card, UPI, wallet, gift card and loyalty are settled outside the drawer.

func (s *registerService) Close(_ context.Context, req dto.CloseRegisterRequest) (*dto.RegisterReport, error) {
	if req.DeclaredCash.IsNegative() {
		return nil, fmt.Errorf("%w: declared cash must not be negative", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.Status != model.RegisterOpen {
		return nil, ErrRegisterClosed
	}

	expected := s.expectedCashLocked()
	deviation := req.DeclaredCash.Sub(expected)
	pct := deviationPct(deviation, expected)
	class := classifyDeviation(pct)

	if class == "critical" && (req.Notes == nil || strings.TrimSpace(*req.Notes) == "") {
		return nil, fmt.Errorf("%w: critical deviation requires notes", ErrInvalidInput)
	}

	closedAt := s.now()
	declared := req.DeclaredCash
	s.session.ExpectedCash = &expected
	s.session.DeclaredCash = &declared
	s.session.Deviation = &deviation
	s.session.DeviationPct = &pct
	s.session.Classification = &class
	s.session.Notes = req.Notes
	s.session.Status = model.RegisterClosed
	s.session.ClosedAt = &closedAt
	s.metrics.SetRegisterOpen(false)

	log.Info().Str("session_id", s.session.ID.String()).Str("expected", expected.StringFixed(2)).
		Str("declared", declared.StringFixed(2)).Str("classification", class).Msg("register closed")
	return s.reportLocked(), nil
}

// ── Report ────────────────────────────────────────────────────────────────────

func (s *registerService) Report(_ context.Context) (*dto.RegisterReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reportLocked(), nil
}

func (s *registerService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.session.Status == model.RegisterOpen
}

// ── Recording ─────────────────────────────────────────────────────────────────

func (s *registerService) Settle(fn func(rec settlement.Recorder) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || s.session.Status != model.RegisterOpen {
		return ErrRegisterClosed
	}
	return fn(heldRegister{s})
}

// RecordTransaction appends tx to the journal. Outside Settle it still
// records, so no finalized sale is ever dropped.
func (s *registerService) RecordTransaction(tx settlement.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || s.session.Status != model.RegisterOpen {
		log.Warn().Str("transaction_id", tx.ID).Msg("transaction recorded while register is closed")
	}
	s.recordLocked(tx)
}

// heldRegister records into a register whose lock is already held.
type heldRegister struct{ s *registerService }

func (h heldRegister) RecordTransaction(tx settlement.Transaction) { h.s.recordLocked(tx) }

func (s *registerService) recordLocked(tx settlement.Transaction) {
	s.txs = append(s.txs, tx)
	s.metrics.ObserveTransaction(tx)
	log.Info().Str("transaction_id", tx.ID).Str("total", tx.Total().StringFixed(2)).
		Str("change", tx.ChangeDue.StringFixed(2)).Int("payments", len(tx.Payments)).Msg("transaction recorded")
}

// ── Journal ───────────────────────────────────────────────────────────────────

func (s *registerService) Transactions(_ context.Context) ([]settlement.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]settlement.Transaction(nil), s.txs...), nil
}

func (s *registerService) Journal(ctx context.Context) ([]model.JournalEntry, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.JournalEntry, 0, len(txs))
	for _, tx := range txs {
		out = append(out, journalEntry(tx))
	}
	return out, nil
}

func (s *registerService) ExportCSV(ctx context.Context, w io.Writer) error {
	entries, err := s.Journal(ctx)
	if err != nil {
		return err
	}
	return gocsv.Marshal(entries, w)
}

func journalEntry(tx settlement.Transaction) model.JournalEntry {
	methods := make([]string, 0, len(tx.Payments))
	for _, p := range tx.Payments {
		methods = append(methods, string(p.Method)+":"+p.Amount.StringFixed(2))
	}
	items := 0
	for _, li := range tx.Items {
		items += li.Quantity
	}
	return model.JournalEntry{
		TransactionID: tx.ID,
		Timestamp:     tx.Timestamp.Format(time.RFC3339),
		CustomerName:  tx.CustomerName,
		CashierName:   tx.CashierName,
		Items:         items,
		Subtotal:      tx.Totals.Subtotal.StringFixed(2),
		Discount:      tx.Totals.DiscountAmount.StringFixed(2),
		Tax:           tx.Totals.TaxAmount.StringFixed(2),
		Total:         tx.Totals.GrandTotal.StringFixed(2),
		Tendered:      tx.AmountTendered.StringFixed(2),
		Change:        tx.ChangeDue.StringFixed(2),
		Methods:       strings.Join(methods, " "),
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *registerService) byMethodLocked() map[settlement.Method]decimal.Decimal {
	out := make(map[settlement.Method]decimal.Decimal)
	for _, tx := range s.txs {
		for m, amt := range tx.ByMethod() {
			out[m] = out[m].Add(amt)
		}
	}
	return out
}

func (s *registerService) expectedCashLocked() decimal.Decimal {
	return s.session.OpeningFloat.Add(s.byMethodLocked()[settlement.MethodCash])
}

func (s *registerService) reportLocked() *dto.RegisterReport {
	if s.session == nil {
		return &dto.RegisterReport{
			Status:       model.RegisterClosed,
			OpeningFloat: decimal.Zero,
			TotalSales:   decimal.Zero,
			ExpectedCash: decimal.Zero,
			ByMethod:     map[string]decimal.Decimal{},
		}
	}

	total := decimal.Zero
	for _, tx := range s.txs {
		total = total.Add(tx.Total())
	}
	byMethod := make(map[string]decimal.Decimal)
	for m, amt := range s.byMethodLocked() {
		byMethod[string(m)] = amt
	}

	r := &dto.RegisterReport{
		SessionID:        s.session.ID.String(),
		Status:           s.session.Status,
		OpenedBy:         s.session.OpenedBy,
		OpeningFloat:     s.session.OpeningFloat,
		TotalSales:       total,
		TransactionCount: len(s.txs),
		ByMethod:         byMethod,
		ExpectedCash:     s.expectedCashLocked(),
		DeclaredCash:     s.session.DeclaredCash,
		Notes:            s.session.Notes,
		OpenedAt:         s.session.OpenedAt.Format(time.RFC3339),
	}
	if s.session.Deviation != nil && s.session.DeviationPct != nil && s.session.Classification != nil {
		r.Deviation = &dto.DeviationResponse{
			Amount:         *s.session.Deviation,
			Percentage:     *s.session.DeviationPct,
			Classification: *s.session.Classification,
		}
	}
	if s.session.ClosedAt != nil {
		t := s.session.ClosedAt.Format(time.RFC3339)
		r.ClosedAt = &t
	}
	return r
}

func deviationPct(deviation, expected decimal.Decimal) decimal.Decimal {
	if expected.IsZero() {
		if deviation.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return deviation.Div(expected).Mul(decimal.NewFromInt(100)).Round(2)
}

// classifyDeviation returns "normal" | "warning" | "critical"
// normal: |pct| <= 1, warning: <= 5, critical: > 5
func classifyDeviation(pct decimal.Decimal) string {
	abs := pct.Abs()
	switch {
	case abs.LessThanOrEqual(decimal.NewFromInt(1)):
		return "normal"
	case abs.LessThanOrEqual(decimal.NewFromInt(5)):
		return "warning"
	default:
		return "critical"
	}
}
