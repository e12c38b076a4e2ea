package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountNotFound indicates that the target account has no stored balance row.
// Distinct from a zero balance.
var ErrAccountNotFound = errors.New("account not found")

// ErrCharacterNotFound indicates that the session could not be resolved to a character.
var ErrCharacterNotFound = errors.New("character not found")

// ErrNoAccess indicates that the acting character holds no role permitting the action.
var ErrNoAccess = errors.New("no access to account")

// ErrInsufficientFunds indicates that the debit side (account balance or cash
// holding) cannot cover the requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrTransactionFailed indicates that a balance mutation did not fully apply and
// was rolled back. Callers must assume no effect occurred.
var ErrTransactionFailed = errors.New("transaction failed")
