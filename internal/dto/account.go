package dto

import (
	"time"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountKind    domain.AccountKind `json:"accountKind" binding:"required,oneof=CASH BANK CARD SAVINGS INVESTMENT"`
	Color          string             `json:"color"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	DisplayOrder   int                `json:"displayOrder"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish "not provided" from zero values; absent fields keep
// their original values.
type UpdateAccountRequest struct {
	Name         *string             `json:"name"`
	AccountKind  *domain.AccountKind `json:"accountKind" binding:"omitempty,oneof=CASH BANK CARD SAVINGS INVESTMENT"`
	Color        *string             `json:"color"`
	DisplayOrder *int                `json:"displayOrder"`
	IsActive     *bool               `json:"isActive"`
}

// ReorderAccountsRequest carries account IDs in their new display order.
type ReorderAccountsRequest struct {
	AccountIDs []string `json:"accountIDs" binding:"required,min=1"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountKind    domain.AccountKind `json:"accountKind"`
	Color          string             `json:"color"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	CurrentBalance decimal.Decimal    `json:"currentBalance"`
	DisplayOrder   int                `json:"displayOrder"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		AccountKind:    acc.AccountKind,
		Color:          acc.Color,
		InitialBalance: acc.InitialBalance,
		CurrentBalance: acc.CurrentBalance,
		DisplayOrder:   acc.DisplayOrder,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to responses.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountKindSummary aggregates accounts of one kind.
type AccountKindSummary struct {
	Count   int             `json:"count"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountsSummaryResponse is the per-user account overview.
type AccountsSummaryResponse struct {
	TotalAccounts int                                    `json:"totalAccounts"`
	TotalBalance  decimal.Decimal                        `json:"totalBalance"`
	ByKind        map[domain.AccountKind]AccountKindSummary `json:"byKind"`
	Accounts      []AccountResponse                      `json:"accounts"`
}
