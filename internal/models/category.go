package models

// Category represents a user-defined transaction category row.
type Category struct {
	CategoryID       string  `db:"category_id"`
	UserID           string  `db:"user_id"`
	Name             string  `db:"name"`
	Icon             string  `db:"icon"`
	Color            string  `db:"color"`
	MovementTypeID   string  `db:"movement_type_id"`
	ParentCategoryID *string `db:"parent_category_id"`
	IsActive         bool    `db:"is_active"`
	AuditFields
}
