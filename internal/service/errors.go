package service

import "errors"

var (
	ErrMissingFields = errors.New("missing order fields")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidItems  = errors.New("invalid cart items")
	ErrEmptyMessage  = errors.New("empty message")
	ErrMissingSignup = errors.New("missing fields")
	ErrInvalidLogin  = errors.New("invalid credentials")
)
