package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/middleware"
	"github.com/sandiprv9898/salon-flow-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler serves the per-terminal cart and settlement routes under
// /v1/terminals/:tid.
type CheckoutHandler struct{ svc service.CheckoutService }

func NewCheckoutHandler(svc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

func tid(c *gin.Context) string { return c.Param("tid") }

// ── Cart ──────────────────────────────────────────────────────────────────────

func (h *CheckoutHandler) Cart(c *gin.Context) {
	resp, err := h.svc.Cart(c.Request.Context(), tid(c))
	writeCart(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), tid(c), req)
	writeCart(c, http.StatusCreated, resp, err)
}

func (h *CheckoutHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), tid(c), c.Param("item_id"), req)
	writeCart(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	resp, err := h.svc.RemoveItem(c.Request.Context(), tid(c), c.Param("item_id"))
	writeCart(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) SetLineDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetLineDiscount(c.Request.Context(), tid(c), c.Param("item_id"), req)
	writeCart(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) SetOrderDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetOrderDiscount(c.Request.Context(), tid(c), req)
	writeCart(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) SetCustomer(c *gin.Context) {
	var req dto.SetCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetCustomer(c.Request.Context(), tid(c), req)
	writeCart(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) ClearCart(c *gin.Context) {
	resp, err := h.svc.ClearCart(c.Request.Context(), tid(c))
	writeCart(c, http.StatusOK, resp, err)
}

// ── Checkout ──────────────────────────────────────────────────────────────────

func (h *CheckoutHandler) Start(c *gin.Context) {
	resp, err := h.svc.StartCheckout(c.Request.Context(), tid(c))
	writeCheckout(c, http.StatusCreated, resp, err)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	resp, err := h.svc.Checkout(c.Request.Context(), tid(c))
	writeCheckout(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) AddPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddPayment(c.Request.Context(), tid(c), req)
	writeCheckout(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) RemovePayment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: payment index must be a number", service.ErrInvalidInput))
		return
	}
	resp, err := h.svc.RemovePayment(c.Request.Context(), tid(c), index)
	writeCheckout(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) Tender(c *gin.Context) {
	var req dto.TenderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Tender(c.Request.Context(), tid(c), req)
	writeCheckout(c, http.StatusOK, resp, err)
}

// Finalize attributes the sale to the authenticated employee.
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	var req dto.FinalizeRequest
	if c.Request.ContentLength != 0 && !bindAndValidate(c, &req) {
		return
	}
	var cashier service.Cashier
	if claims := middleware.GetClaims(c); claims != nil {
		cashier = service.Cashier{ID: claims.EmployeeID, Name: claims.Name}
	}
	tx, err := h.svc.Finalize(c.Request.Context(), tid(c), cashier, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *CheckoutHandler) Cancel(c *gin.Context) {
	resp, err := h.svc.Cancel(c.Request.Context(), tid(c))
	writeCart(c, http.StatusOK, resp, err)
}

func writeCart(c *gin.Context, status int, resp *dto.CartResponse, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, resp)
}

func writeCheckout(c *gin.Context, status int, resp *dto.CheckoutResponse, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, resp)
}
