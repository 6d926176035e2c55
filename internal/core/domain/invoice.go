package domain

import (
	"errors"
	"time"
)

// Pre-defined errors for invoice validation.
var (
	ErrClientNameRequired = errors.New("client name is required")
	ErrInvalidAmount      = errors.New("invoice amount must be positive")
	ErrInvoiceAlreadyPaid = errors.New("invoice is already paid")
	ErrInvoiceVoid        = errors.New("invoice is void")
)

// InvoiceStatus represents the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

// Invoice is a billable document issued to a client.
type Invoice struct {
	ID         int64
	OrgID      int64
	ClientName string
	Amount     float64
	Status     InvoiceStatus
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// InvoiceParams holds the input for creating a new invoice.
type InvoiceParams struct {
	OrgID      int64
	ClientName string
	Amount     float64
}

// NewInvoice is a factory function to create a valid new invoice.
func NewInvoice(params InvoiceParams) (*Invoice, error) {
	if params.ClientName == "" {
		return nil, ErrClientNameRequired
	}
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return &Invoice{
		OrgID:      params.OrgID,
		ClientName: params.ClientName,
		Amount:     params.Amount,
		Status:     InvoiceDraft,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// MarkPaid settles the invoice, enforcing billing rules.
func (i *Invoice) MarkPaid() error {
	switch i.Status {
	case InvoicePaid:
		return ErrInvoiceAlreadyPaid
	case InvoiceVoid:
		return ErrInvoiceVoid
	}

	i.Status = InvoicePaid
	now := time.Now().UTC()
	i.PaidAt = &now
	i.UpdatedAt = &now
	return nil
}

// Snapshot returns the invoice's fields as event payload data.
func (i *Invoice) Snapshot() map[string]any {
	data := map[string]any{
		"id":         i.ID,
		"orgId":      i.OrgID,
		"clientName": i.ClientName,
		"amount":     i.Amount,
		"status":     string(i.Status),
	}
	if i.PaidAt != nil {
		data["paidAt"] = i.PaidAt.UTC().Format(time.RFC3339)
	}
	return data
}
