package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks the role required for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInsufficientBalance indicates that a manual adjustment would drive the balance negative.
var ErrInsufficientBalance = errors.New("insufficient balance for adjustment")

// ErrInsufficientPoints indicates that a redemption price exceeds the current balance.
var ErrInsufficientPoints = errors.New("insufficient points for redemption")

// ErrAlreadyRedeemed indicates that a redemption grant already exists for the user/document pair.
var ErrAlreadyRedeemed = errors.New("document already redeemed")

// ErrAlreadyRewarded indicates that the upload has already been rewarded.
var ErrAlreadyRewarded = errors.New("upload already rewarded")

// ErrConcurrencyExhausted indicates that the compare-and-set retry budget ran out under contention.
var ErrConcurrencyExhausted = errors.New("operation retry budget exhausted under contention")

// ErrRollbackFailed indicates that a compensating refund could not be applied.
// Balances referenced by the surrounding log entry need manual reconciliation.
var ErrRollbackFailed = errors.New("compensating rollback failed")
