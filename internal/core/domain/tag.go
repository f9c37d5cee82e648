package domain

// Tag is a user-scoped label attachable to transactions (many-to-many).
type Tag struct {
	TagID       string `json:"tagID"`
	UserID      string `json:"userID"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
