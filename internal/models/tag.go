package models

// Tag represents a user-defined tag row.
type Tag struct {
	TagID       string `db:"tag_id"`
	UserID      string `db:"user_id"`
	Name        string `db:"name"`
	Color       string `db:"color"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
