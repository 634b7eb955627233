package infra

// pdf.go renders receipt-sized PDF slips with go-pdf/fpdf:
//   - Business name header
//   - Transaction id, timestamp, customer and cashier
//   - Item table (name, quantity, line total)
//   - Discount and tax lines
//   - Bold grand total
//   - Payment breakdown and change
//
// The output file is saved to storagePath/receipt_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF writes the receipt of tx and returns the file path.
// storagePath is created if needed.
func GenerateReceiptPDF(tx settlement.Transaction, businessName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, "receipt_"+sanitizeFileName(tx.ID)+".pdf")

	// 74mm × 140mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 140},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(businessName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Tax Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Transaction info ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, tx.ID, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, tx.Timestamp.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if tx.CustomerName != "" {
		pdf.CellFormat(contentW, 4, tr("Customer: "+tx.CustomerName), "", 1, "L", false, 0, "")
	}
	if tx.CashierName != "" {
		pdf.CellFormat(contentW, 4, tr("Served by: "+tx.CashierName), "", 1, "L", false, 0, "")
	}
	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, li := range tx.Items {
		name := li.Name
		if name == "" {
			name = li.ID
		}
		if len(name) > 24 {
			name = name[:23] + "."
		}
		pdf.CellFormat(col1, 5, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", li.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, li.Total().StringFixed(2), "", 1, "R", false, 0, "")
		if li.Discount != nil {
			pdf.CellFormat(col1+col2, 4, "  discount "+li.Discount.String(), "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 4, "-"+li.DiscountAmount().StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	row := func(label, value string) {
		pdf.CellFormat(col1+col2, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, value, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 7)
	row("Subtotal:", tx.Totals.Subtotal.StringFixed(2))
	if !tx.Totals.DiscountAmount.IsZero() {
		row("Discount:", "-"+tx.Totals.DiscountAmount.StringFixed(2))
	}
	row(fmt.Sprintf("Tax (%s%%):", tx.TaxRate.Shift(2).String()), tx.Totals.TaxAmount.StringFixed(2))

	pdf.SetFont("Helvetica", "B", 9)
	row("TOTAL:", tx.Totals.GrandTotal.StringFixed(2))

	// ── Payments ──────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	for _, p := range tx.Payments {
		row("Paid ("+string(p.Method)+"):", p.Amount.StringFixed(2))
	}
	if tx.ChangeDue.IsPositive() {
		row("Change:", tx.ChangeDue.StringFixed(2))
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for visiting!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
