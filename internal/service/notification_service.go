package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/Kryx404/gohealth/internal/config"
	"github.com/Kryx404/gohealth/internal/events"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// NotificationService sends transactional mail and reacts to domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
}

func (n *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderCreated", zap.String("order_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged", zap.String("order_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.SubjectID))
	return nil
}

// InvoiceItem is one purchased line shown in the invoice mail.
type InvoiceItem struct {
	Name     string
	Quantity int
	Price    float64
}

// InvoiceInput carries the invoice mail payload. The PDF bytes come from
// the caller already base64-encoded; this service only attaches them.
type InvoiceInput struct {
	To            string
	Subject       string
	OrderID       string
	CustomerName  string
	Items         []InvoiceItem
	Total         float64
	PaymentMethod string
	PDFBase64     string
}

// SendInvoice mails the order confirmation with the invoice PDF attached.
func (n *NotificationService) SendInvoice(ctx context.Context, input InvoiceInput) error {
	subject := input.Subject
	if subject == "" {
		subject = fmt.Sprintf("GoHealth Invoice - Order %s", input.OrderID)
	}
	body := invoiceHTML(input)
	return n.send(input.To, subject, body, input.PDFBase64, fmt.Sprintf("invoice-%s.pdf", input.OrderID))
}

// QuestionInput carries the contact form payload relayed to the shop inbox.
type QuestionInput struct {
	Name    string
	Email   string
	Message string
}

// SendQuestion relays a customer question to the configured inbox.
func (n *NotificationService) SendQuestion(ctx context.Context, input QuestionInput) error {
	subject := fmt.Sprintf("Customer question from %s", input.Name)
	body := fmt.Sprintf(
		"<h2>New question</h2><p><strong>From:</strong> %s (%s)</p><p>%s</p>",
		input.Name, input.Email, input.Message,
	)
	return n.send(n.cfg.Inbox, subject, body, "", "")
}

// send delivers one HTML mail, optionally with a base64 PDF attachment.
// Without SMTP credentials it degrades to a logged no-op so development
// environments work without a relay.
func (n *NotificationService) send(to, subject, htmlBody, pdfBase64, pdfName string) error {
	if strings.TrimSpace(n.cfg.Username) == "" {
		n.logger.Info("smtp not configured; skipping mail",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := buildMessage(n.cfg.From, to, subject, htmlBody, pdfBase64, pdfName)
	addr := n.cfg.Host + ":" + n.cfg.Port
	authn := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	if err := smtp.SendMail(addr, authn, n.cfg.From, []string{to}, msg); err != nil {
		n.logger.Error("smtp send failed", zap.String("to", to), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	n.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

const attachmentBoundary = "gohealth-mail-boundary"

func buildMessage(from, to, subject, htmlBody, pdfBase64, pdfName string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if pdfBase64 == "" {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(htmlBody)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", attachmentBoundary)

	fmt.Fprintf(&b, "--%s\r\n", attachmentBoundary)
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", attachmentBoundary)
	b.WriteString("Content-Type: application/pdf\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n\r\n", pdfName)
	b.WriteString(pdfBase64)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", attachmentBoundary)
	return []byte(b.String())
}

func invoiceHTML(input InvoiceInput) string {
	var items strings.Builder
	for _, item := range input.Items {
		fmt.Fprintf(&items,
			"<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>",
			item.Name, item.Quantity, item.Price)
	}
	return fmt.Sprintf(`<h1>GOHEALTH</h1>
<h2>Thank you for your purchase, %s!</h2>
<p>Order ID: <strong>%s</strong></p>
<p>Payment method: <strong>%s</strong></p>
<table><tr><th>Item</th><th>Qty</th><th>Price</th></tr>%s</table>
<p><strong>Total: %.2f</strong></p>
<p>Your invoice is attached as a PDF.</p>`,
		input.CustomerName, input.OrderID, input.PaymentMethod, items.String(), input.Total)
}
