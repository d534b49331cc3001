package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/dto"
	"github.com/Kryx404/gohealth/internal/auth"
	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/service"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// UsersHandler exposes profile self-service and admin account management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Profile GET /api/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.users.GetProfile(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserOf(user)})
}

// UpdateProfile PATCH /api/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return apperrors.NewValidationError("birth_date must be YYYY-MM-DD", nil)
	}

	user, err := h.users.UpdateProfile(c.Context(), principal.User.ID, service.ProfileInput{
		Username:  req.Username,
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
	return c.JSON(fiber.Map{"data": dto.UserOf(user)})
}

// List GET /api/admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.UserOf(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ChangeRole PATCH /api/admin/users/:id/role.
func (h *UsersHandler) ChangeRole(c *fiber.Ctx) error {
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.ChangeRole(c.Context(), c.Params("id"), domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

// SetActive PATCH /api/admin/users/:id/active.
func (h *UsersHandler) SetActive(c *fiber.Ctx) error {
	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.SetActive(c.Context(), c.Params("id"), req.IsActive); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}
