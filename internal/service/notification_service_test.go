package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kryx404/gohealth/internal/config"
	"github.com/Kryx404/gohealth/internal/events"
)

func TestBuildMessagePlain(t *testing.T) {
	msg := string(buildMessage("shop@example.com", "user@example.com", "Hello", "<p>hi</p>", "", ""))

	assert.Contains(t, msg, "From: shop@example.com\r\n")
	assert.Contains(t, msg, "To: user@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "<p>hi</p>")
	assert.NotContains(t, msg, "multipart/mixed")
}

func TestBuildMessageWithAttachment(t *testing.T) {
	msg := string(buildMessage("shop@example.com", "user@example.com", "Invoice", "<p>thanks</p>", "UERGLWJ5dGVz", "invoice-1.pdf"))

	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, "Content-Type: application/pdf")
	assert.Contains(t, msg, "Content-Transfer-Encoding: base64")
	assert.Contains(t, msg, `filename="invoice-1.pdf"`)
	assert.Contains(t, msg, "UERGLWJ5dGVz")
	assert.Equal(t, 2, strings.Count(msg, "--"+attachmentBoundary+"\r\n"))
	assert.Contains(t, msg, "--"+attachmentBoundary+"--")
}

func TestInvoiceHTML(t *testing.T) {
	html := invoiceHTML(InvoiceInput{
		OrderID:       "o1",
		CustomerName:  "Budi",
		PaymentMethod: "paypal",
		Total:         150000,
		Items: []InvoiceItem{
			{Name: "Vitamin C", Quantity: 2, Price: 50000},
		},
	})

	assert.Contains(t, html, "Budi")
	assert.Contains(t, html, "o1")
	assert.Contains(t, html, "Vitamin C")
	assert.Contains(t, html, "150000.00")
}

func TestSendWithoutSMTPIsNoOp(t *testing.T) {
	svc := NewNotificationService(events.NewInMemoryDispatcher(), zap.NewNop(), config.MailConfig{})

	require.NoError(t, svc.SendInvoice(context.Background(), InvoiceInput{To: "user@example.com", OrderID: "o1"}))
	require.NoError(t, svc.SendQuestion(context.Background(), QuestionInput{Name: "Budi", Email: "b@example.com", Message: "hi"}))
}

func TestNotificationHandlersRegistered(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.NewNop(), config.MailConfig{})
	svc.RegisterHandlers()

	// Publishing must not error even with no SMTP relay configured.
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventOrderCreated}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventUserRegistered}))
}
