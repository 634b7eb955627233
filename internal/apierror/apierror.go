// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details.
package apierror

import (
	"errors"
	"net/http"

	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"
	"github.com/sandiprv9898/salon-flow-pos/internal/service"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

const internalMessage = "internal server error"

var statusTable = []struct {
	err    error
	status int
}{
	{repository.ErrNotFound, http.StatusNotFound},
	{pricing.ErrItemNotFound, http.StatusNotFound},
	{settlement.ErrPaymentNotFound, http.StatusNotFound},
	{service.ErrNoSettlement, http.StatusNotFound},

	{repository.ErrDuplicate, http.StatusConflict},
	{settlement.ErrSettlementClosed, http.StatusConflict},
	{settlement.ErrIncompletePayment, http.StatusConflict},
	{settlement.ErrPaymentCapExceeded, http.StatusConflict},
	{settlement.ErrEmptyOrder, http.StatusConflict},
	{service.ErrRegisterClosed, http.StatusConflict},
	{service.ErrRegisterAlreadyOpen, http.StatusConflict},
	{service.ErrCheckoutInProgress, http.StatusConflict},
	{service.ErrInvalidTransition, http.StatusConflict},

	{pricing.ErrInvalidLineItem, http.StatusUnprocessableEntity},
	{pricing.ErrInvalidDiscount, http.StatusUnprocessableEntity},
	{settlement.ErrInvalidPayment, http.StatusUnprocessableEntity},
	{service.ErrInvalidInput, http.StatusUnprocessableEntity},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
}

// Status maps a domain error to its HTTP status code.
func Status(err error) int {
	for _, row := range statusTable {
		if errors.Is(err, row.err) {
			return row.status
		}
	}
	return http.StatusInternalServerError
}

// FromError builds the response envelope for err. Messages of unmapped
// errors are hidden from the client.
func FromError(err error) (int, *APIError) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		return status, New(internalMessage)
	}
	return status, New(err.Error())
}
