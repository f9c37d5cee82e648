package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionState is the lifecycle state of a planned future movement.
type ProjectionState string

const (
	ProjectionPending   ProjectionState = "PENDING"
	ProjectionConfirmed ProjectionState = "CONFIRMED"
	ProjectionOmitted   ProjectionState = "OMITTED"
	ProjectionOverdue   ProjectionState = "OVERDUE"
)

// ValidProjectionState reports whether s is one of the four known states.
func ValidProjectionState(s ProjectionState) bool {
	switch s {
	case ProjectionPending, ProjectionConfirmed, ProjectionOmitted, ProjectionOverdue:
		return true
	}
	return false
}

// CanTransitionTo enforces the projection state graph. CONFIRMED and OMITTED
// are terminal; OVERDUE can still be settled either way.
func (s ProjectionState) CanTransitionTo(next ProjectionState) bool {
	if s == next {
		return false
	}
	switch s {
	case ProjectionPending:
		return next == ProjectionConfirmed || next == ProjectionOmitted || next == ProjectionOverdue
	case ProjectionOverdue:
		return next == ProjectionConfirmed || next == ProjectionOmitted
	}
	return false
}

// RecurrenceFrequency describes how often a recurring projection repeats.
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "DAILY"
	FrequencyWeekly  RecurrenceFrequency = "WEEKLY"
	FrequencyMonthly RecurrenceFrequency = "MONTHLY"
	FrequencyYearly  RecurrenceFrequency = "YEARLY"
)

// Projection is a planned, not-yet-settled movement. It never touches an
// account balance; confirming one only moves its state, and conversion into a
// real Transaction is the caller's job via the transaction ledger.
type Projection struct {
	ProjectionID         string               `json:"projectionID"`
	UserID               string               `json:"userID"`
	AccountID            string               `json:"accountID"`
	MovementTypeID       string               `json:"movementTypeID"`
	CategoryID           string               `json:"categoryID"`
	PaymentTypeID        *string              `json:"paymentTypeID,omitempty"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	Amount               decimal.Decimal      `json:"amount"`
	ScheduledDate        time.Time            `json:"scheduledDate"`
	DueDate              *time.Time           `json:"dueDate,omitempty"`
	Recurring            bool                 `json:"recurring"`
	Frequency            *RecurrenceFrequency `json:"frequency,omitempty"`
	NextOccurrence       *time.Time           `json:"nextOccurrence,omitempty"`
	Notify               bool                 `json:"notify"`
	NotificationLeadDays int                  `json:"notificationLeadDays"`
	State                ProjectionState      `json:"state"`
	AuditFields
}
