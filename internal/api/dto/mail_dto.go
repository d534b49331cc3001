package dto

// InvoiceItemDTO is one invoice line in the send-invoice payload.
type InvoiceItemDTO struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// SendInvoiceRequest payload; the PDF arrives base64-encoded from the
// client that rendered it.
type SendInvoiceRequest struct {
	To            string           `json:"to"`
	Subject       string           `json:"subject"`
	OrderID       string           `json:"orderId"`
	CustomerName  string           `json:"customerName"`
	Items         []InvoiceItemDTO `json:"items"`
	Total         float64          `json:"total"`
	PaymentMethod string           `json:"paymentMethod"`
	PDFBase64     string           `json:"pdfBase64"`
}

// SendQuestionRequest payload for the contact form.
type SendQuestionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
