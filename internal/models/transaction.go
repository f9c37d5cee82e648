package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a settled movement row against one account.
// Amount is always positive; the movement type determines the sign applied
// to the account balance.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	UserID         string          `db:"user_id"`
	AccountID      string          `db:"account_id"`
	MovementTypeID string          `db:"movement_type_id"`
	CategoryID     string          `db:"category_id"`
	PaymentTypeID  *string         `db:"payment_type_id"`
	Amount         decimal.Decimal `db:"amount"`
	Description    string          `db:"description"`
	Date           time.Time       `db:"date"`
	Confirmed      bool            `db:"confirmed"`
	Notes          string          `db:"notes"`
	AuditFields
}

// TransactionTag is a row of the transaction/tag association table.
type TransactionTag struct {
	TransactionID string    `db:"transaction_id"`
	TagID         string    `db:"tag_id"`
	CreatedAt     time.Time `db:"created_at"`
}
