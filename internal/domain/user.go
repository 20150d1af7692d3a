package domain

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants full administrative access, including moderation of
	// any travel plan and its join requests.
	RoleAdmin Role = "admin"
	// RoleUser grants standard access: publishing plans and requesting to
	// join other users' plans.
	RoleUser Role = "user"
)

// User represents an authenticated user account in the system.
type User struct {
	Record
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	DisplayName  string `json:"display_name"`
	Role         Role   `json:"role"` // admin or user
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Actor is the authenticated identity a caller presents to the core
// operations. The transport layer resolves tokens into an Actor; the core
// never sees credentials.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin returns true if the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Actor returns the acting identity of a user.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
