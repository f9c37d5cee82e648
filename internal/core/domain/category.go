package domain

// Category is a user-scoped transaction category, optionally nested under a
// parent category and tied to a movement type.
type Category struct {
	CategoryID       string  `json:"categoryID"`
	UserID           string  `json:"userID"`
	Name             string  `json:"name"`
	Icon             string  `json:"icon"`
	Color            string  `json:"color"`
	MovementTypeID   string  `json:"movementTypeID"`
	ParentCategoryID *string `json:"parentCategoryID,omitempty"`
	IsActive         bool    `json:"isActive"`
	AuditFields
}
