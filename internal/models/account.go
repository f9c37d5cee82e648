package models

import (
	"github.com/shopspring/decimal"
)

// AccountKind is the user-facing classification of an account.
type AccountKind string

// Account represents a financial account row. current_balance is the running
// balance maintained by the ledger's units of work.
type Account struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	AccountKind    AccountKind     `db:"account_kind"`
	Color          string          `db:"color"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	DisplayOrder   int             `db:"display_order"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
