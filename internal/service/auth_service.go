package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Kryx404/gohealth/internal/auth"
	"github.com/Kryx404/gohealth/internal/config"
	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/events"
	"github.com/Kryx404/gohealth/internal/repository"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// AuthService verifies credentials against the user table and registers new
// accounts. It never exposes the stored password beyond this package.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		dispatcher: dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Authenticate checks email and password against the credential store.
// Unknown email and wrong password both yield ErrInvalidCredentials; an
// inactive account fails with ErrAccountInactive even on a password match.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Identity{}, auth.ErrInvalidCredentials
		}
		return domain.Identity{}, apperrors.MapError(err)
	}
	if !user.IsActive {
		return domain.Identity{}, auth.ErrAccountInactive
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return domain.Identity{}, auth.ErrInvalidCredentials
	}
	return domain.IdentityOf(user), nil
}

// Login authenticates and mints an API bearer token alongside the identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Identity, string, time.Time, error) {
	identity, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return domain.Identity{}, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(identity)
	if err != nil {
		return domain.Identity{}, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return identity, token, exp, nil
}

// RegisterInput carries the registration form fields. PaypalID is the only
// optional one.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
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

// Register creates a new active end-user account with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("Email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		BirthDate:    input.BirthDate,
		Gender:       input.Gender,
		Address:      input.Address,
		Province:     input.Province,
		City:         input.City,
		District:     input.District,
		Village:      input.Village,
		Phone:        input.Phone,
		PaypalID:     input.PaypalID,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, newEvent(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
			Email:    user.Email,
			Username: user.Username,
		}))
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
