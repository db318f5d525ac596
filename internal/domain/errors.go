package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrSenderNotFound      = errors.New("sender not found")
	ErrReceiverNotFound    = errors.New("receiver not found")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Transfer errors
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrSelfTransfer  = errors.New("cannot send money to yourself")

	// Fraud report errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEvaluationFailed    = errors.New("fraud evaluation failed")

	// Authentication errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
