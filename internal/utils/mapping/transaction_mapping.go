package mapping

import (
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/honeymoneyapp/honeymoney_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Tag associations live in their own table and are not part of the row.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		UserID:         d.UserID,
		AccountID:      d.AccountID,
		MovementTypeID: d.MovementTypeID,
		CategoryID:     d.CategoryID,
		PaymentTypeID:  d.PaymentTypeID,
		Amount:         d.Amount,
		Description:    d.Description,
		Date:           d.Date,
		Confirmed:      d.Confirmed,
		Notes:          d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		UserID:         m.UserID,
		AccountID:      m.AccountID,
		MovementTypeID: m.MovementTypeID,
		CategoryID:     m.CategoryID,
		PaymentTypeID:  m.PaymentTypeID,
		Amount:         m.Amount,
		Description:    m.Description,
		Date:           m.Date,
		Confirmed:      m.Confirmed,
		Notes:          m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainTransactionSlice converts model Transactions to domain Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
