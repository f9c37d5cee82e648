package domain

import "errors"

// ErrInsufficientBalance indicates that applying a debit would drive an
// account balance below its floor. The mutation is rejected as a whole.
var ErrInsufficientBalance = errors.New("insufficient balance")
