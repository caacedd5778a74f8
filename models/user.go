package models

// Role values stored in the users table.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User represents an account in the system.
// It maps to the `users` table.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Email        string `db:"email" json:"email"`
	Role         string `db:"role" json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
