package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrPolicyViolation = errors.New("Operation not allowed for this customer category")
var ErrInsufficientFunds = errors.New("Insufficient balance")
var ErrInvalidAmount = errors.New("Amount must be greater than zero")
var ErrDataIntegrity = errors.New("Stored data violates a ledger invariant")
var ErrUnsupportedCategory = errors.New("No investment policy for customer category")
var ErrConcurrentUpdate = errors.New("Account was modified concurrently")
