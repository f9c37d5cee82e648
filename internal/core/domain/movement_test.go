package domain_test

import (
	"testing"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMovementKind(t *testing.T) {
	tests := []struct {
		name         string
		movementType domain.MovementType
		want         domain.MovementKind
		wantErr      bool
	}{
		{
			name:         "income by name",
			movementType: domain.MovementType{Name: "Income"},
			want:         domain.KindIncome,
		},
		{
			name:         "expense by name",
			movementType: domain.MovementType{Name: "Expense"},
			want:         domain.KindExpense,
		},
		{
			name:         "transfer flag wins over name",
			movementType: domain.MovementType{Name: "Income", IsTransfer: true},
			want:         domain.KindTransfer,
		},
		{
			name:         "unknown non-transfer name defaults to expense",
			movementType: domain.MovementType{Name: "Subscription"},
			want:         domain.KindExpense,
		},
		{
			name:         "income name is case insensitive",
			movementType: domain.MovementType{Name: "  INCOME "},
			want:         domain.KindIncome,
		},
		{
			name:         "empty name is invalid",
			movementType: domain.MovementType{Name: ""},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ResolveMovementKind(tt.movementType)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMovementKind_Polarity(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.MovementKind
		want    domain.Polarity
		wantErr bool
	}{
		{name: "income credits", kind: domain.KindIncome, want: domain.PolarityCredit},
		{name: "expense debits", kind: domain.KindExpense, want: domain.PolarityDebit},
		{name: "transfer is explicit", kind: domain.KindTransfer, want: domain.PolarityTransfer},
		{name: "unknown kind fails", kind: domain.MovementKind("REFUND"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.kind.Polarity()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignedDelta(t *testing.T) {
	amount := decimal.RequireFromString("150.50")

	delta, err := domain.SignedDelta(domain.KindIncome, amount)
	require.NoError(t, err)
	assert.True(t, delta.Equal(amount), "income keeps the positive sign")

	delta, err = domain.SignedDelta(domain.KindExpense, amount)
	require.NoError(t, err)
	assert.True(t, delta.Equal(amount.Neg()), "expense negates the amount")

	_, err = domain.SignedDelta(domain.KindTransfer, amount)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestProjectionState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.ProjectionState
		to   domain.ProjectionState
		want bool
	}{
		{name: "pending to confirmed", from: domain.ProjectionPending, to: domain.ProjectionConfirmed, want: true},
		{name: "pending to omitted", from: domain.ProjectionPending, to: domain.ProjectionOmitted, want: true},
		{name: "pending to overdue", from: domain.ProjectionPending, to: domain.ProjectionOverdue, want: true},
		{name: "overdue to confirmed", from: domain.ProjectionOverdue, to: domain.ProjectionConfirmed, want: true},
		{name: "overdue to omitted", from: domain.ProjectionOverdue, to: domain.ProjectionOmitted, want: true},
		{name: "confirmed is terminal", from: domain.ProjectionConfirmed, to: domain.ProjectionPending, want: false},
		{name: "omitted is terminal", from: domain.ProjectionOmitted, to: domain.ProjectionPending, want: false},
		{name: "omitted cannot be confirmed", from: domain.ProjectionOmitted, to: domain.ProjectionConfirmed, want: false},
		{name: "overdue cannot go back to pending", from: domain.ProjectionOverdue, to: domain.ProjectionPending, want: false},
		{name: "no self transition", from: domain.ProjectionPending, to: domain.ProjectionPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
