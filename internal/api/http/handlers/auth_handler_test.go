package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/Kryx404/gohealth/internal/api/http"
	"github.com/Kryx404/gohealth/internal/api/http/handlers"
	"github.com/Kryx404/gohealth/internal/auth"
	"github.com/Kryx404/gohealth/internal/config"
	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/events"
	"github.com/Kryx404/gohealth/internal/observability"
	"github.com/Kryx404/gohealth/internal/service"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = "new-" + user.Email
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(ctx context.Context) ([]domain.User, error) { return nil, nil }

func (m *memUserRepo) SetRole(ctx context.Context, id string, role domain.Role) error { return nil }

func (m *memUserRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (m *memUserRepo) Count(ctx context.Context) (int64, error) { return int64(len(m.byEmail)), nil }

func newAuthApp(t *testing.T) (*fiber.App, *auth.IdleMonitor) {
	t.Helper()

	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	repo := &memUserRepo{byEmail: map[string]*domain.User{
		"user@example.com": {
			ID: "u1", Username: "user", Email: "user@example.com",
			PasswordHash: hash, Role: domain.RoleUser, IsActive: true,
		},
		"sleepy@example.com": {
			ID: "u2", Username: "sleepy", Email: "sleepy@example.com",
			PasswordHash: hash, Role: domain.RoleUser, IsActive: false,
		},
	}}

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}}
	authService := service.NewAuthService(cfg, repo, events.NewInMemoryDispatcher())
	sessions := auth.NewCookieSessionStore(time.Hour)
	idle := auth.NewIdleMonitor(time.Hour, nil)
	t.Cleanup(idle.Close)

	h := handlers.NewAuthHandler(authService, sessions, idle)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/logout", h.Logout)
	app.Get("/api/auth/session", h.Session)
	app.Post("/api/auth/register", h.Register)
	return app, idle
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestLogin(t *testing.T) {
	app, _ := newAuthApp(t)

	t.Run("success sets session cookie", func(t *testing.T) {
		resp, err := app.Test(postJSON("/api/auth/login", `{"email":"user@example.com","password":"s3cret"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["ok"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "u1", user["id"])
		assert.Equal(t, "user", user["role"].(string))
		authPart := body["auth"].(map[string]any)
		assert.NotEmpty(t, authPart["token"])

		var sessionCookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == auth.SessionCookie {
				sessionCookie = c
			}
		}
		require.NotNil(t, sessionCookie)
		identity, ok := auth.DecodeSession(sessionCookie.Value)
		require.True(t, ok)
		assert.Equal(t, "u1", identity.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(postJSON("/api/auth/login", `{"email":"user@example.com","password":"wrong"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["ok"])
		assert.Equal(t, "Invalid credentials", body["error"])
		assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
	})

	t.Run("unknown email gets the same message", func(t *testing.T) {
		resp, err := app.Test(postJSON("/api/auth/login", `{"email":"nobody@example.com","password":"s3cret"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", decodeBody(t, resp)["error"])
	})

	t.Run("inactive account", func(t *testing.T) {
		resp, err := app.Test(postJSON("/api/auth/login", `{"email":"sleepy@example.com","password":"s3cret"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "User inactive", decodeBody(t, resp)["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, err := app.Test(postJSON("/api/auth/login", `{"email":"user@example.com"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogoutAndSession(t *testing.T) {
	app, idle := newAuthApp(t)

	resp, err := app.Test(postJSON("/api/auth/login", `{"email":"user@example.com","password":"s3cret"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := resp.Cookies()[0]

	req := httptest.NewRequest("GET", "/api/auth/session", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	require.NotNil(t, body["user"])
	assert.Equal(t, "u1", body["user"].(map[string]any)["id"])

	req = httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, idle.Expired("u1"))

	// Without the cookie the session view reports nobody.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/auth/session", nil))
	require.NoError(t, err)
	assert.Nil(t, decodeBody(t, resp)["user"])

	// Logging out again is harmless.
	resp, err = app.Test(httptest.NewRequest("POST", "/api/auth/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegisterEndpoint(t *testing.T) {
	app, _ := newAuthApp(t)

	const payload = `{
		"username":"budi","email":"budi@example.com","password":"s3cret",
		"full_name":"Budi Santoso","birth_date":"1990-04-02","gender":"male",
		"address":"Jl. Merdeka 10","province":"Jawa Barat","city":"Bandung",
		"district":"Coblong","village":"Dago","phone":"0812000111"
	}`

	resp, err := app.Test(postJSON("/api/auth/register", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "budi@example.com", body["user"].(map[string]any)["email"])

	t.Run("duplicate email", func(t *testing.T) {
		resp, err := app.Test(postJSON("/api/auth/register", payload))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("missing field", func(t *testing.T) {
		resp, err := app.Test(postJSON("/api/auth/register", `{"email":"x@y.z","password":"p"}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "All fields are required except paypal_id", decodeBody(t, resp)["error"])
	})
}
