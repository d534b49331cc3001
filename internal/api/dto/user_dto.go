package dto

import (
	"time"

	"github.com/Kryx404/gohealth/internal/domain"
)

// ProfileUpdateRequest payload for self-service profile edits.
type ProfileUpdateRequest struct {
	Username  string  `json:"username"`
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

// ChangeRoleRequest payload for admin role changes.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// SetActiveRequest payload for admin activation toggles.
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// UserResponse is an account on the wire, password excluded.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	BirthDate string      `json:"birth_date"`
	Gender    string      `json:"gender"`
	Address   string      `json:"address"`
	Province  string      `json:"province"`
	City      string      `json:"city"`
	District  string      `json:"district"`
	Village   string      `json:"village"`
	Phone     string      `json:"phone"`
	PaypalID  *string     `json:"paypal_id"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserOf maps a domain user into the wire form.
func UserOf(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		BirthDate: u.BirthDate.Format("2006-01-02"),
		Gender:    u.Gender,
		Address:   u.Address,
		Province:  u.Province,
		City:      u.City,
		District:  u.District,
		Village:   u.Village,
		Phone:     u.Phone,
		PaypalID:  u.PaypalID,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
