package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/repository"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// UserService handles profile reads and admin account management.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetProfile loads one account.
func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ProfileInput carries the editable profile fields. Role, active flag and
// password are out of reach here.
type ProfileInput struct {
	Username  string
	FullName  string
	BirthDate time.Time
	Gender    string
	Address   string
	Province  string
	City      string
	District  string
	Village   string
	Phone     string
	PaypalID  *string
}

// UpdateProfile rewrites the caller's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Username = input.Username
	user.FullName = input.FullName
	user.BirthDate = input.BirthDate
	user.Gender = input.Gender
	user.Address = input.Address
	user.Province = input.Province
	user.City = input.City
	user.District = input.District
	user.Village = input.Village
	user.Phone = input.Phone
	user.PaypalID = input.PaypalID

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns every account for the admin panel.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ChangeRole flips an account between user and admin.
func (s *UserService) ChangeRole(ctx context.Context, id string, role domain.Role) error {
	if !role.Valid() {
		return apperrors.NewValidationError("Unknown role", map[string]any{"role": string(role)})
	}
	if err := s.users.SetRole(ctx, id, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// SetActive toggles an account's active flag. Inactive accounts cannot log
// in; existing sessions stay valid until re-login, matching the issuance
// staleness the session token accepts.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}
