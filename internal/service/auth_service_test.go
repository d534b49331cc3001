package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kryx404/gohealth/internal/auth"
	"github.com/Kryx404/gohealth/internal/config"
	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/events"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	created []*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = "generated-id"
	f.created = append(f.created, user)
	if f.byEmail == nil {
		f.byEmail = make(map[string]*domain.User)
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) { return nil, nil }

func (f *fakeUserRepo) SetRole(ctx context.Context, id string, role domain.Role) error { return nil }

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) { return int64(len(f.byEmail)), nil }

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		ID:           "u-" + email,
		Username:     email,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
	if repo.byEmail == nil {
		repo.byEmail = make(map[string]*domain.User)
	}
	repo.byEmail[email] = user
	return user
}

func TestAuthenticate(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "user@example.com", "s3cret", true, domain.RoleUser)
	seedUser(t, repo, "sleepy@example.com", "s3cret", false, domain.RoleUser)

	svc := NewAuthService(testConfig(), repo, events.NewInMemoryDispatcher())
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		identity, err := svc.Authenticate(ctx, "user@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "u-user@example.com", identity.ID)
		assert.Equal(t, domain.RoleUser, identity.Role)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "user@example.com", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Authenticate(ctx, "nobody@example.com", "s3cret")
		_, errWrong := svc.Authenticate(ctx, "user@example.com", "wrong")
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("inactive account rejected before password check", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "sleepy@example.com", "totally-wrong")
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})

	t.Run("inactive account rejected with correct password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "sleepy@example.com", "s3cret")
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})
}

func TestLoginIssuesToken(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "user@example.com", "s3cret", true, domain.RoleUser)

	svc := NewAuthService(testConfig(), repo, events.NewInMemoryDispatcher())

	identity, token, expiresAt, err := svc.Login(context.Background(), "user@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, claims.UserID)
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(testConfig(), repo, events.NewInMemoryDispatcher())
	ctx := context.Background()

	input := RegisterInput{
		Username:  "budi",
		Email:     "budi@example.com",
		Password:  "s3cret",
		FullName:  "Budi Santoso",
		BirthDate: time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC),
		Gender:    "male",
		Address:   "Jl. Merdeka 10",
		Province:  "Jawa Barat",
		City:      "Bandung",
		District:  "Coblong",
		Village:   "Dago",
		Phone:     "0812000111",
	}

	user, err := svc.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, auth.VerifyPassword(user.PasswordHash, "s3cret"))

	// Duplicate email conflicts.
	_, err = svc.Register(ctx, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	// The new account can log in right away.
	_, err = svc.Authenticate(ctx, "budi@example.com", "s3cret")
	assert.NoError(t, err)
}
