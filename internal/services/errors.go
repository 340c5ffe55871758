package services

import "errors"

var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrInvalidAmount        = errors.New("amount to pay must be greater than zero")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrInvalidStatus        = errors.New("status must be active or inactive")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)
