package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Projection represents a planned movement row. It carries no balance effect.
type Projection struct {
	ProjectionID         string          `db:"projection_id"`
	UserID               string          `db:"user_id"`
	AccountID            string          `db:"account_id"`
	MovementTypeID       string          `db:"movement_type_id"`
	CategoryID           string          `db:"category_id"`
	PaymentTypeID        *string         `db:"payment_type_id"`
	Title                string          `db:"title"`
	Description          string          `db:"description"`
	Amount               decimal.Decimal `db:"amount"`
	ScheduledDate        time.Time       `db:"scheduled_date"`
	DueDate              *time.Time      `db:"due_date"`
	Recurring            bool            `db:"recurring"`
	Frequency            *string         `db:"frequency"`
	NextOccurrence       *time.Time      `db:"next_occurrence"`
	Notify               bool            `db:"notify"`
	NotificationLeadDays int             `db:"notification_lead_days"`
	State                string          `db:"state"`
	AuditFields
}
