package domain

// User is an application user. PasswordHash is never serialized.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	PhotoURL     string `json:"photoURL"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
