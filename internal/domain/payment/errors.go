package payment

import "errors"

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrReceiptNumberExists = errors.New("receipt number already exists")
)
