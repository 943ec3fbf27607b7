package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidPIN     = errors.New("invalid pin")
	ErrNoTransactions = errors.New("no transactions for selected period")
	ErrBadSnapshot    = errors.New("invalid backup file")
)
