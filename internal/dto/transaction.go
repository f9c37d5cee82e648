package dto

import (
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
type CreateTransactionRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	MovementTypeID string          `json:"movementTypeID" binding:"required"`
	CategoryID     string          `json:"categoryID" binding:"required"`
	PaymentTypeID  *string         `json:"paymentTypeID"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Description    string          `json:"description"`
	Date           *time.Time      `json:"date"`
	Confirmed      *bool           `json:"confirmed"`
	Notes          string          `json:"notes"`
	TagIDs         []string        `json:"tagIDs"`
}

// UpdateTransactionRequest is the patch applied to an existing transaction.
// Every field is optional; absent fields keep the original values, and the
// ledger reverses the original balance delta before applying the merged one.
type UpdateTransactionRequest struct {
	AccountID      *string          `json:"accountID"`
	MovementTypeID *string          `json:"movementTypeID"`
	CategoryID     *string          `json:"categoryID"`
	PaymentTypeID  *string          `json:"paymentTypeID"`
	Amount         *decimal.Decimal `json:"amount"`
	Description    *string          `json:"description"`
	Date           *time.Time       `json:"date"`
	Confirmed      *bool            `json:"confirmed"`
	Notes          *string          `json:"notes"`
}

// TransactionTagsRequest carries tag IDs for association add/remove.
type TransactionTagsRequest struct {
	TagIDs []string `json:"tagIDs" binding:"required,min=1"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID      *string    `form:"accountID"`
	MovementTypeID *string    `form:"movementTypeID"`
	Confirmed      *bool      `form:"confirmed"`
	DateFrom       *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo         *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit          int        `form:"limit,default=50"`
	Offset         int        `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
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
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to a response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  txn.TransactionID,
		AccountID:      txn.AccountID,
		MovementTypeID: txn.MovementTypeID,
		CategoryID:     txn.CategoryID,
		PaymentTypeID:  txn.PaymentTypeID,
		Amount:         txn.Amount,
		Description:    txn.Description,
		Date:           txn.Date,
		Confirmed:      txn.Confirmed,
		Notes:          txn.Notes,
		TagIDs:         txn.TagIDs,
		CreatedAt:      txn.CreatedAt,
		LastUpdatedAt:  txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps a transaction page with its total count.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// MovementSummaryResponse is one row of the per-period summary.
type MovementSummaryResponse struct {
	MovementTypeID string          `json:"movementTypeID"`
	MovementName   string          `json:"movementName"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Count          int64           `json:"count"`
}

// ToMovementSummaryResponses converts domain summaries to response DTOs.
func ToMovementSummaryResponses(summaries []domain.MovementSummary) []MovementSummaryResponse {
	res := make([]MovementSummaryResponse, len(summaries))
	for i, s := range summaries {
		res[i] = MovementSummaryResponse{
			MovementTypeID: s.MovementType.MovementTypeID,
			MovementName:   s.MovementType.Name,
			TotalAmount:    s.TotalAmount,
			Count:          s.Count,
		}
	}
	return res
}
