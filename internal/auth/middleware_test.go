package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kryx404/gohealth/internal/domain"
)

func newGuardApp(idle *IdleMonitor) *fiber.App {
	guard := NewRouteGuard(NewCookieSessionStore(time.Hour), idle)
	app := fiber.New()
	app.Use(guard.Handle)
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	for _, path := range []string{"/", "/shop", "/cart", "/orders", "/login", "/admin"} {
		app.Get(path, ok)
	}
	app.Get("/api/products", ok)
	return app
}

func requestAs(path string, identity *domain.Identity) *http.Request {
	req := httptest.NewRequest("GET", path, nil)
	if identity != nil {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: EncodeSession(*identity)})
	}
	return req
}

func TestRouteGuardRedirects(t *testing.T) {
	idle := NewIdleMonitor(time.Hour, nil)
	defer idle.Close()
	app := newGuardApp(idle)

	user := &domain.Identity{ID: "u1", Email: "user@example.com", Role: domain.RoleUser}
	admin := &domain.Identity{ID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin}

	tests := []struct {
		name     string
		path     string
		identity *domain.Identity
		status   int
		location string
	}{
		{"guest home", "/", nil, fiber.StatusOK, ""},
		{"guest cart", "/cart", nil, fiber.StatusFound, "/login"},
		{"guest admin", "/admin", nil, fiber.StatusFound, "/login"},
		{"user orders", "/orders", user, fiber.StatusOK, ""},
		{"user admin", "/admin", user, fiber.StatusFound, "/?toast=admin_only"},
		{"user login", "/login", user, fiber.StatusFound, "/?toast=already_logged_in"},
		{"user login with toast passes", "/login?toast=admin_only", user, fiber.StatusOK, ""},
		{"admin admin", "/admin", admin, fiber.StatusOK, ""},
		{"admin shop", "/shop", admin, fiber.StatusFound, "/admin?toast=admin_no_public"},
		{"api untouched", "/api/products", admin, fiber.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(requestAs(tt.path, tt.identity))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

func TestRouteGuardExpiredSession(t *testing.T) {
	idle := NewIdleMonitor(10*time.Millisecond, nil)
	defer idle.Close()
	app := newGuardApp(idle)

	user := &domain.Identity{ID: "u1", Email: "user@example.com", Role: domain.RoleUser}
	idle.Reset(user.ID)
	waitExpired(t, idle, user.ID)

	resp, err := app.Test(requestAs("/shop", user))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// The dead cookie is cleared alongside the redirect.
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)

	// Expiry is consumed; the id is free for a fresh login.
	assert.False(t, idle.Expired(user.ID))
}

func TestRouteGuardKeepsSessionAlive(t *testing.T) {
	idle := NewIdleMonitor(time.Hour, nil)
	defer idle.Close()
	app := newGuardApp(idle)

	user := &domain.Identity{ID: "u1", Email: "user@example.com", Role: domain.RoleUser}
	idle.Reset(user.ID)

	resp, err := app.Test(requestAs("/shop", user))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, idle.Expired(user.ID))
}
