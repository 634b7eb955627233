package service

import "errors"

var (
	ErrRegisterClosed      = errors.New("register is closed")
	ErrRegisterAlreadyOpen = errors.New("register is already open")
	ErrNoSettlement        = errors.New("no checkout in progress")
	ErrCheckoutInProgress  = errors.New("cart is locked while checkout is in progress")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
