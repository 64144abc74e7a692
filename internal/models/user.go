package models

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// User is the authenticated caller as reported by the identity provider.
// Users are not stored by this service; ledger rows reference them by ID.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Role     UserRole `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
