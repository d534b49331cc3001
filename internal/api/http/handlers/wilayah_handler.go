package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/service"
)

// WilayahHandler proxies region lookups for the registration form.
type WilayahHandler struct {
	wilayah *service.WilayahService
}

// NewWilayahHandler constructs handler.
func NewWilayahHandler(wilayahService *service.WilayahService) *WilayahHandler {
	return &WilayahHandler{wilayah: wilayahService}
}

// Lookup GET /api/wilayah?type=...&code=...
func (h *WilayahHandler) Lookup(c *fiber.Ctx) error {
	body, err := h.wilayah.Lookup(c.Context(), c.Query("type"), c.Query("code"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
