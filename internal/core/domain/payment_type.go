package domain

// PaymentType is a global lookup row (cash, debit card, ...), seeded by
// migration.
type PaymentType struct {
	PaymentTypeID string `json:"paymentTypeID"`
	Name          string `json:"name"`
	AuditFields
}
