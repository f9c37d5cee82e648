package models

// MovementType is a row of the seeded movement-type vocabulary.
type MovementType struct {
	MovementTypeID string `db:"movement_type_id"`
	Name           string `db:"name"`
	IsTransfer     bool   `db:"is_transfer"`
	AuditFields
}

// PaymentType is a row of the seeded payment-type catalog.
type PaymentType struct {
	PaymentTypeID string `db:"payment_type_id"`
	Name          string `db:"name"`
	AuditFields
}
