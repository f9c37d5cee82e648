package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a settled movement against exactly one account. Its balance
// effect has been applied exactly once for as long as the row exists.
type Transaction struct {
	TransactionID  string          `json:"transactionID"`
	UserID         string          `json:"userID"`
	AccountID      string          `json:"accountID"`
	MovementTypeID string          `json:"movementTypeID"`
	CategoryID     string          `json:"categoryID"`
	PaymentTypeID  *string         `json:"paymentTypeID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Date           time.Time       `json:"date"`
	Confirmed      bool            `json:"confirmed"`
	Notes          string          `json:"notes"`
	TagIDs         []string        `json:"tagIDs,omitempty"`
	AuditFields
}

// MovementSummary aggregates confirmed transactions per movement type over a
// period.
type MovementSummary struct {
	MovementType MovementType    `json:"movementType"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Count        int64           `json:"count"`
}
