package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidMovementType indicates a movement-type descriptor that cannot be
// classified as income, expense or transfer.
var ErrInvalidMovementType = errors.New("invalid movement type")

// MovementType is a row of the fixed movement-type vocabulary.
type MovementType struct {
	MovementTypeID string `json:"movementTypeID"`
	Name           string `json:"name"`
	IsTransfer     bool   `json:"isTransfer"`
	AuditFields
}

// MovementKind is the closed classification of a movement type. It is
// resolved once from a MovementType row at the service boundary; nothing
// downstream compares movement-type names by string.
type MovementKind string

const (
	KindIncome   MovementKind = "INCOME"
	KindExpense  MovementKind = "EXPENSE"
	KindTransfer MovementKind = "TRANSFER"
)

// Polarity is the directional effect of a movement kind on a single account
// balance.
type Polarity string

const (
	PolarityCredit   Polarity = "CREDIT"
	PolarityDebit    Polarity = "DEBIT"
	PolarityTransfer Polarity = "TRANSFER"
)

// ResolveMovementKind classifies a movement-type descriptor. A transfer flag
// wins over the name; otherwise an income-named type is income and everything
// else is an expense-like debit, matching the seeded vocabulary.
func ResolveMovementKind(mt MovementType) (MovementKind, error) {
	if mt.IsTransfer {
		return KindTransfer, nil
	}
	switch strings.ToLower(strings.TrimSpace(mt.Name)) {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	case "":
		return "", fmt.Errorf("%w: empty movement type name", ErrInvalidMovementType)
	}
	// Unknown non-transfer names are treated as expense-like debits.
	return KindExpense, nil
}

// Polarity returns the balance effect of the kind.
func (k MovementKind) Polarity() (Polarity, error) {
	switch k {
	case KindIncome:
		return PolarityCredit, nil
	case KindExpense:
		return PolarityDebit, nil
	case KindTransfer:
		return PolarityTransfer, nil
	}
	return "", fmt.Errorf("%w: unknown movement kind %q", ErrInvalidMovementType, string(k))
}

// SignedDelta converts a positive transaction amount into the signed balance
// delta its movement kind implies. Transfer kinds carry no single-account
// delta and must be rejected by the caller before reaching here.
func SignedDelta(kind MovementKind, amount decimal.Decimal) (decimal.Decimal, error) {
	polarity, err := kind.Polarity()
	if err != nil {
		return decimal.Zero, err
	}
	switch polarity {
	case PolarityCredit:
		return amount, nil
	case PolarityDebit:
		return amount.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("%w: transfer movements have no single-account delta", ErrInvalidMovementType)
}
