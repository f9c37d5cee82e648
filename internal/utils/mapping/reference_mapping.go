package mapping

import (
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/honeymoneyapp/honeymoney_backend/internal/models"
)

// ToDomainMovementType converts a model MovementType to a domain MovementType.
func ToDomainMovementType(m models.MovementType) domain.MovementType {
	return domain.MovementType{
		MovementTypeID: m.MovementTypeID,
		Name:           m.Name,
		IsTransfer:     m.IsTransfer,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainPaymentType converts a model PaymentType to a domain PaymentType.
func ToDomainPaymentType(m models.PaymentType) domain.PaymentType {
	return domain.PaymentType{
		PaymentTypeID: m.PaymentTypeID,
		Name:          m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToModelCategory converts a domain Category to a model Category.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:       d.CategoryID,
		UserID:           d.UserID,
		Name:             d.Name,
		Icon:             d.Icon,
		Color:            d.Color,
		MovementTypeID:   d.MovementTypeID,
		ParentCategoryID: d.ParentCategoryID,
		IsActive:         d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainCategory converts a model Category to a domain Category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:       m.CategoryID,
		UserID:           m.UserID,
		Name:             m.Name,
		Icon:             m.Icon,
		Color:            m.Color,
		MovementTypeID:   m.MovementTypeID,
		ParentCategoryID: m.ParentCategoryID,
		IsActive:         m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToModelTag converts a domain Tag to a model Tag.
func ToModelTag(d domain.Tag) models.Tag {
	return models.Tag{
		TagID:       d.TagID,
		UserID:      d.UserID,
		Name:        d.Name,
		Color:       d.Color,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainTag converts a model Tag to a domain Tag.
func ToDomainTag(m models.Tag) domain.Tag {
	return domain.Tag{
		TagID:       m.TagID,
		UserID:      m.UserID,
		Name:        m.Name,
		Color:       m.Color,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
