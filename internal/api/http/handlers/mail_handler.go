package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/dto"
	"github.com/Kryx404/gohealth/internal/service"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// MailHandler exposes invoice and contact mail endpoints.
type MailHandler struct {
	notifications *service.NotificationService
}

// NewMailHandler constructs handler.
func NewMailHandler(notificationService *service.NotificationService) *MailHandler {
	return &MailHandler{notifications: notificationService}
}

// SendInvoice POST /api/send-invoice.
func (h *MailHandler) SendInvoice(c *fiber.Ctx) error {
	var req dto.SendInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.To == "" || req.OrderID == "" {
		return apperrors.NewValidationError("to and orderId required", nil)
	}

	items := make([]service.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.InvoiceItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	if err := h.notifications.SendInvoice(c.Context(), service.InvoiceInput{
		To:            req.To,
		Subject:       req.Subject,
		OrderID:       req.OrderID,
		CustomerName:  req.CustomerName,
		Items:         items,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		PDFBase64:     req.PDFBase64,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

// SendQuestion POST /api/send-question.
func (h *MailHandler) SendQuestion(c *fiber.Ctx) error {
	var req dto.SendQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return apperrors.NewValidationError("name, email and message required", nil)
	}
	if err := h.notifications.SendQuestion(c.Context(), service.QuestionInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}
