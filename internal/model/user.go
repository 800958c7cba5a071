package model

// Role controls access to admin-only operations.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a member of the marketing team. Authentication is mocked, so the
// password lives here in plaintext; this is session state, not a credential
// store.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`

	// Mood is the emoji the user last picked as their status indicator.
	Mood string `json:"mood,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
