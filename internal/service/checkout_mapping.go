package service

import (
	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/shopspring/decimal"
)

// Amounts are rounded to two decimals here, at presentation; the pricing
// engine never rounds.

func cartResponse(terminalID string, t *terminal) *dto.CartResponse {
	items := t.order.Items()
	resp := &dto.CartResponse{
		TerminalID:   terminalID,
		OrderID:      t.order.ID().String(),
		Items:        make([]dto.LineItemResponse, 0, len(items)),
		Totals:       totalsResponse(t.order.Totals(), t.order.TaxRate()),
		CheckoutOpen: t.checkingOut(),
	}
	for _, li := range items {
		resp.Items = append(resp.Items, lineItemResponse(li))
	}
	if d, ok := t.order.Discount(); ok {
		resp.OrderDiscount = discountResponse(&d)
	}
	if t.customer != nil {
		resp.CustomerID = t.customer.ID
		resp.CustomerName = t.customer.Name
	}
	return resp
}

func lineItemResponse(li pricing.LineItem) dto.LineItemResponse {
	return dto.LineItemResponse{
		ID:              li.ID,
		Name:            li.Name,
		Kind:            string(li.Kind),
		UnitPrice:       li.UnitPrice,
		Quantity:        li.Quantity,
		Discount:        discountResponse(li.Discount),
		EmployeeID:      li.EmployeeID,
		DurationMinutes: li.DurationMinutes,
		Subtotal:        li.Subtotal().Round(2),
		DiscountAmount:  li.DiscountAmount().Round(2),
		Total:           li.Total().Round(2),
	}
}

func discountResponse(d *pricing.Discount) *dto.DiscountResponse {
	if d == nil {
		return nil
	}
	return &dto.DiscountResponse{Amount: d.Amount, Mode: string(d.Mode)}
}

func totalsResponse(t pricing.Totals, taxRate decimal.Decimal) dto.TotalsResponse {
	r := t.Round()
	return dto.TotalsResponse{
		Subtotal:       r.Subtotal,
		DiscountAmount: r.DiscountAmount,
		TaxableAmount:  r.TaxableAmount,
		TaxRate:        taxRate,
		TaxAmount:      r.TaxAmount,
		GrandTotal:     r.GrandTotal,
	}
}

func paymentResponses(ps []settlement.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, len(ps))
	for i, p := range ps {
		out[i] = dto.PaymentResponse{Index: i, Method: string(p.Method), Amount: p.Amount, Final: p.Final}
	}
	return out
}

func checkoutResponse(terminalID string, st *settlement.Settlement, methods []settlement.Method) *dto.CheckoutResponse {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	return &dto.CheckoutResponse{
		SettlementID:   st.ID().String(),
		TerminalID:     terminalID,
		State:          string(st.State()),
		Totals:         totalsResponse(st.Totals(), st.Order().TaxRate()),
		Payments:       paymentResponses(st.Payments()),
		AmountTendered: st.AmountTendered(),
		Remaining:      st.Remaining(),
		ChangeDue:      st.ChangeDue(),
		SplitSlotsLeft: st.SplitSlotsLeft(),
		Methods:        names,
	}
}

func transactionResponse(tx settlement.Transaction) *dto.TransactionResponse {
	items := make([]dto.LineItemResponse, len(tx.Items))
	for i, li := range tx.Items {
		items[i] = lineItemResponse(li)
	}
	return &dto.TransactionResponse{
		ID:             tx.ID,
		Timestamp:      tx.Timestamp,
		CustomerID:     tx.CustomerID,
		CustomerName:   tx.CustomerName,
		CashierID:      tx.CashierID,
		CashierName:    tx.CashierName,
		Items:          items,
		OrderDiscount:  discountResponse(tx.OrderDiscount),
		Totals:         totalsResponse(tx.Totals, tx.TaxRate),
		Payments:       paymentResponses(tx.Payments),
		AmountTendered: tx.AmountTendered,
		ChangeDue:      tx.ChangeDue,
		Notes:          tx.Notes,
	}
}
