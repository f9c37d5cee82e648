package mapping

import (
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/honeymoneyapp/honeymoney_backend/internal/models"
)

// ToModelProjection converts a domain Projection to a model Projection.
func ToModelProjection(d domain.Projection) models.Projection {
	var frequency *string
	if d.Frequency != nil {
		f := string(*d.Frequency)
		frequency = &f
	}
	return models.Projection{
		ProjectionID:         d.ProjectionID,
		UserID:               d.UserID,
		AccountID:            d.AccountID,
		MovementTypeID:       d.MovementTypeID,
		CategoryID:           d.CategoryID,
		PaymentTypeID:        d.PaymentTypeID,
		Title:                d.Title,
		Description:          d.Description,
		Amount:               d.Amount,
		ScheduledDate:        d.ScheduledDate,
		DueDate:              d.DueDate,
		Recurring:            d.Recurring,
		Frequency:            frequency,
		NextOccurrence:       d.NextOccurrence,
		Notify:               d.Notify,
		NotificationLeadDays: d.NotificationLeadDays,
		State:                string(d.State),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainProjection converts a model Projection to a domain Projection.
func ToDomainProjection(m models.Projection) domain.Projection {
	var frequency *domain.RecurrenceFrequency
	if m.Frequency != nil {
		f := domain.RecurrenceFrequency(*m.Frequency)
		frequency = &f
	}
	return domain.Projection{
		ProjectionID:         m.ProjectionID,
		UserID:               m.UserID,
		AccountID:            m.AccountID,
		MovementTypeID:       m.MovementTypeID,
		CategoryID:           m.CategoryID,
		PaymentTypeID:        m.PaymentTypeID,
		Title:                m.Title,
		Description:          m.Description,
		Amount:               m.Amount,
		ScheduledDate:        m.ScheduledDate,
		DueDate:              m.DueDate,
		Recurring:            m.Recurring,
		Frequency:            frequency,
		NextOccurrence:       m.NextOccurrence,
		Notify:               m.Notify,
		NotificationLeadDays: m.NotificationLeadDays,
		State:                domain.ProjectionState(m.State),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainProjectionSlice converts model Projections to domain Projections.
func ToDomainProjectionSlice(ms []models.Projection) []domain.Projection {
	ds := make([]domain.Projection, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProjection(m)
	}
	return ds
}
