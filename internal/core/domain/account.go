package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind is the user-facing classification of an account.
type AccountKind string

const (
	AccountCash       AccountKind = "CASH"
	AccountBank       AccountKind = "BANK"
	AccountCard       AccountKind = "CARD"
	AccountSavings    AccountKind = "SAVINGS"
	AccountInvestment AccountKind = "INVESTMENT"
)

// Account represents a financial account owned by a single user.
//
// CurrentBalance is exclusively mutated by the transaction ledger; every other
// path treats it as read-only. InitialBalance is the snapshot taken at
// creation, kept for reconciliation. DisplayOrder is presentation-only.
type Account struct {
	AccountID      string          `json:"accountID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	AccountKind    AccountKind     `json:"accountKind"`
	Color          string          `json:"color"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	DisplayOrder   int             `json:"displayOrder"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
