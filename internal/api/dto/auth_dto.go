package dto

import (
	"time"

	"github.com/Kryx404/gohealth/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for new accounts. PaypalID is optional.
type RegisterRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FullName  string  `json:"full_name"`
	BirthDate string  `json:"birth_date"`
	Gender    string  `json:"gender"`
	Address   string  `json:"address"`
	Province  string  `json:"province"`
	City      string  `json:"city"`
	District  string  `json:"district"`
	Village   string  `json:"village"`
	Phone     string  `json:"phone"`
	PaypalID  *string `json:"paypal_id"`
}

// SessionUser is the identity subset returned after authentication.
type SessionUser struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthResponse carries the API bearer token minted at login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse is the tagged success variant of the login endpoint.
type LoginResponse struct {
	OK   bool         `json:"ok"`
	User SessionUser  `json:"user"`
	Auth AuthResponse `json:"auth"`
}

// SessionUserOf maps a domain identity into the wire form.
func SessionUserOf(identity domain.Identity) SessionUser {
	return SessionUser{ID: identity.ID, Email: identity.Email, Role: identity.Role}
}
