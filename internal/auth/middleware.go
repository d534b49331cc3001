package auth

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/repository"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller on API routes.
type Principal struct {
	User *domain.User
}

// RouteGuard intercepts page navigations and applies the role-based route
// policy. It performs no writes beyond clearing a dead session cookie.
type RouteGuard struct {
	sessions SessionStore
	idle     *IdleMonitor
}

// NewRouteGuard constructs the guard middleware.
func NewRouteGuard(sessions SessionStore, idle *IdleMonitor) *RouteGuard {
	return &RouteGuard{sessions: sessions, idle: idle}
}

// Handle evaluates the policy table for guarded page paths. A session whose
// idle timer has fired is treated as absent: the cookie is cleared and the
// visitor lands on the login page again.
func (g *RouteGuard) Handle(c *fiber.Ctx) error {
	path := c.Path()
	if !GuardedPath(path) {
		return c.Next()
	}

	var session *domain.Identity
	if identity, ok := g.sessions.Read(c); ok {
		if g.idle.Expired(identity.ID) {
			g.idle.End(identity.ID)
			g.sessions.Clear(c)
			return redirectTo(c, redirect("/login", NoticeNone))
		}
		g.idle.Touch(identity.ID)
		session = &identity
	}

	decision := Decide(path, session, c.Query(NoticeParam) != "")
	if decision.Allow {
		return c.Next()
	}
	return redirectTo(c, decision)
}

func redirectTo(c *fiber.Ctx, d Decision) error {
	target := d.Target
	if d.Notice != NoticeNone {
		q := url.Values{NoticeParam: {string(d.Notice)}}
		target += "?" + q.Encode()
	}
	return c.Redirect(target, fiber.StatusFound)
}

// Middleware authenticates API requests from either the bearer token or the
// session cookie, loads the account and stores it as the request principal.
type Middleware struct {
	tokens   *TokenManager
	sessions SessionStore
	users    repository.UserRepository
}

// NewMiddleware constructs the API authentication middleware.
func NewMiddleware(tokens *TokenManager, sessions SessionStore, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, sessions: sessions, users: users}
}

// Handle enforces authentication for protected API routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	userID, ok := m.subjectID(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}
	if !user.IsActive {
		return ErrAccountInactive
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

func (m *Middleware) subjectID(c *fiber.Ctx) (string, bool) {
	if header := c.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		claims, err := m.tokens.ParseToken(parts[1])
		if err != nil {
			return "", false
		}
		return claims.UserID, true
	}
	if identity, ok := m.sessions.Read(c); ok {
		return identity.ID, true
	}
	return "", false
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
