package auth

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/domain"
)

// SessionCookie is the cookie holding the serialized identity.
const SessionCookie = "gohealth_user"

// SessionStore issues, reads and clears the client-held session token.
// The cookie is the single physical backing store; nothing is persisted
// server-side.
type SessionStore interface {
	Issue(c *fiber.Ctx, identity domain.Identity)
	Read(c *fiber.Ctx) (domain.Identity, bool)
	Clear(c *fiber.Ctx)
}

// CookieSessionStore keeps the identity as URL-encoded JSON in a cookie
// scoped to the whole site.
type CookieSessionStore struct {
	ttl time.Duration
}

// NewCookieSessionStore builds a store with the given cookie lifetime.
func NewCookieSessionStore(ttl time.Duration) *CookieSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CookieSessionStore{ttl: ttl}
}

// Issue writes the identity cookie for the whole site.
func (s *CookieSessionStore) Issue(c *fiber.Ctx, identity domain.Identity) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    EncodeSession(identity),
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Read parses the identity cookie. Any decode failure degrades to "no
// session"; it never surfaces an error to the caller.
func (s *CookieSessionStore) Read(c *fiber.Ctx) (domain.Identity, bool) {
	return DecodeSession(c.Cookies(SessionCookie))
}

// Clear removes the identity cookie. Clearing an absent session is a no-op.
func (s *CookieSessionStore) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// EncodeSession serializes an identity to the cookie wire form.
func EncodeSession(identity domain.Identity) string {
	raw, err := json.Marshal(identity)
	if err != nil {
		return ""
	}
	return url.QueryEscape(string(raw))
}

// DecodeSession parses a cookie value back into an identity. A missing,
// unescapable or unparsable value, or one without an id, counts as absent.
func DecodeSession(value string) (domain.Identity, bool) {
	if value == "" {
		return domain.Identity{}, false
	}
	raw, err := url.QueryUnescape(value)
	if err != nil {
		return domain.Identity{}, false
	}
	var identity domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return domain.Identity{}, false
	}
	if identity.ID == "" {
		return domain.Identity{}, false
	}
	return identity, true
}
