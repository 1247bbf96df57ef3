package order

import "errors"

var (
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrEmptyOrderItems    = errors.New("no items to checkout")
	ErrCheckoutValidation = errors.New("checkout validation failed")
	ErrInvalidCustomer    = errors.New("customer name, phone and address are required")
)
