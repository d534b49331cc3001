package auth

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kryx404/gohealth/internal/domain"
)

func TestEncodeDecodeSession(t *testing.T) {
	identity := domain.Identity{ID: "u1", Email: "user@example.com", Role: domain.RoleUser}

	encoded := EncodeSession(identity)
	require.NotEmpty(t, encoded)

	decoded, ok := DecodeSession(encoded)
	require.True(t, ok)
	assert.Equal(t, identity, decoded)
}

func TestDecodeSessionRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"bad escape", "%zz"},
		{"not json", url.QueryEscape("not-json")},
		{"missing id", url.QueryEscape(`{"email":"x@y.z","role":"user"}`)},
		{"wrong shape", url.QueryEscape(`[1,2,3]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DecodeSession(tt.value)
			assert.False(t, ok)
		})
	}
}

func TestCookieSessionStoreRoundTrip(t *testing.T) {
	store := NewCookieSessionStore(24 * time.Hour)
	identity := domain.Identity{ID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin}

	app := fiber.New()
	app.Get("/issue", func(c *fiber.Ctx) error {
		store.Issue(c, identity)
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/read", func(c *fiber.Ctx) error {
		got, ok := store.Read(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(got)
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		store.Clear(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/issue", nil))
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, SessionCookie, cookie.Name)
	assert.Equal(t, "/", cookie.Path)

	decoded, ok := DecodeSession(cookie.Value)
	require.True(t, ok)
	assert.Equal(t, identity, decoded)

	req := httptest.NewRequest("GET", "/read", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/read", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/clear", nil))
	require.NoError(t, err)
	cookies = resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))

	// Clearing an already-absent session stays a no-op.
	resp, err = app.Test(httptest.NewRequest("GET", "/clear", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
