package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/dto"
	"github.com/Kryx404/gohealth/internal/auth"
	"github.com/Kryx404/gohealth/internal/service"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// AuthHandler exposes login, registration and logout.
type AuthHandler struct {
	auth     *service.AuthService
	sessions auth.SessionStore
	idle     *auth.IdleMonitor
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions auth.SessionStore, idle *auth.IdleMonitor) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions, idle: idle}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Email and password required", nil)
	}

	identity, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.sessions.Issue(c, identity)
	h.idle.Reset(identity.ID)

	return c.JSON(dto.LoginResponse{
		OK:   true,
		User: dto.SessionUserOf(identity),
		Auth: dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Username == "" ||
		req.BirthDate == "" || req.Gender == "" || req.Address == "" || req.Province == "" ||
		req.City == "" || req.District == "" || req.Village == "" || req.Phone == "" {
		return apperrors.NewValidationError("All fields are required except paypal_id", nil)
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return apperrors.NewValidationError("birth_date must be YYYY-MM-DD", nil)
	}

	user, err := h.auth.Register(c.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		BirthDate: birthDate,
		Gender:    req.Gender,
		Address:   req.Address,
		Province:  req.Province,
		City:      req.City,
		District:  req.District,
		Village:   req.Village,
		Phone:     req.Phone,
		PaypalID:  req.PaypalID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"ok":   true,
		"user": dto.UserOf(user),
	})
}

// Logout handles POST /api/auth/logout. Clearing an absent session is a
// no-op.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if identity, ok := h.sessions.Read(c); ok {
		h.idle.End(identity.ID)
	}
	h.sessions.Clear(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Session handles GET /api/auth/session: the client-side read-through view
// of the cookie session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	identity, ok := h.sessions.Read(c)
	if !ok || h.idle.Expired(identity.ID) {
		return c.JSON(fiber.Map{"ok": true, "user": nil})
	}
	return c.JSON(fiber.Map{"ok": true, "user": dto.SessionUserOf(identity)})
}
