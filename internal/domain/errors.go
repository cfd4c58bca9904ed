package domain

import (
	"errors"
	"fmt"
)

// Checkout rejections. None of them leave catalog stock or customer balance modified.
var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrItemExpired         = errors.New("item is expired")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
)

// ItemError ties a rejection to the catalog item that caused it.
type ItemError struct {
	Item string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("product %s: %v", e.Item, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func newItemError(item string, err error) error {
	return &ItemError{Item: item, Err: err}
}
