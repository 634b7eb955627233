package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandiprv9898/salon-flow-pos/internal/infra"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/rs/zerolog/log"
)

// Sender delivers an e-mail with an optional attachment. *infra.Mailer
// implements it.
type Sender interface {
	SendReceipt(to, subject, body, pdfPath string) error
}

// ReceiptWorker renders the PDF receipt of a transaction and mails it to
// the customer. Delivery goes through the circuit breaker.
type ReceiptWorker struct {
	businessName string
	storagePath  string
	sender       Sender
	cb           *infra.CircuitBreaker
	metrics      *infra.Metrics
}

// NewReceiptWorker builds a worker. A nil sender renders receipts only.
func NewReceiptWorker(businessName, storagePath string, sender Sender, cb *infra.CircuitBreaker, metrics *infra.Metrics) *ReceiptWorker {
	return &ReceiptWorker{
		businessName: businessName,
		storagePath:  storagePath,
		sender:       sender,
		cb:           cb,
		metrics:      metrics,
	}
}

// Process is a ProcessFunc.
func (w *ReceiptWorker) Process(_ context.Context, job ReceiptJob) error {
	path, err := infra.GenerateReceiptPDF(job.Tx, w.businessName, w.storagePath)
	if err != nil {
		w.metrics.ObserveReceipt("failed")
		return fmt.Errorf("render receipt %s: %w", job.Tx.ID, err)
	}

	if job.Email == "" || w.sender == nil {
		w.metrics.ObserveReceipt("rendered")
		log.Debug().Str("transaction_id", job.Tx.ID).Str("path", path).Msg("receipt rendered")
		return nil
	}

	send := func() error {
		return w.sender.SendReceipt(job.Email, w.subject(job.Tx), receiptBody(job.Tx), path)
	}
	if w.cb != nil {
		err = w.cb.Execute(send)
	} else {
		err = send()
	}
	if err != nil {
		w.metrics.ObserveReceipt("failed")
		return fmt.Errorf("mail receipt %s: %w", job.Tx.ID, err)
	}

	w.metrics.ObserveReceipt("sent")
	log.Info().Str("transaction_id", job.Tx.ID).Str("to", job.Email).Msg("receipt sent")
	return nil
}

func (w *ReceiptWorker) subject(tx settlement.Transaction) string {
	return fmt.Sprintf("%s receipt %s", w.businessName, tx.ID)
}

func receiptBody(tx settlement.Transaction) string {
	var b strings.Builder
	name := tx.CustomerName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\nThank you for your visit.\n\n", name)
	for _, li := range tx.Items {
		fmt.Fprintf(&b, "%d x %s  %s\n", li.Quantity, li.Name, li.Total().StringFixed(2))
	}
	r := tx.Totals.Round()
	fmt.Fprintf(&b, "\nTotal: %s\n", r.GrandTotal.StringFixed(2))
	if tx.ChangeDue.IsPositive() {
		fmt.Fprintf(&b, "Change: %s\n", tx.ChangeDue.StringFixed(2))
	}
	b.WriteString("\nYour receipt is attached.\n")
	return b.String()
}
