package domain

// Identity is the minimal account subset exposed after authentication.
// It is what the session cookie carries; the password field never leaves
// the authenticator.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IdentityOf extracts the session-safe subset of a user record.
func IdentityOf(u *User) Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}
