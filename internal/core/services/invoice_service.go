package services

import (
	"context"

	"github.com/lorrc/erp-backend/internal/core/domain"
	apperrors "github.com/lorrc/erp-backend/internal/core/errors"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

// InvoiceService implements business logic for billing
type InvoiceService struct {
	invoiceRepo ports.InvoiceRepository
	broadcaster ports.EventBroadcaster
}

var _ ports.InvoiceService = (*InvoiceService)(nil)

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo ports.InvoiceRepository, broadcaster ports.EventBroadcaster) ports.InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		broadcaster: broadcaster,
	}
}

// CreateInvoice handles the use case for issuing a new invoice
func (s *InvoiceService) CreateInvoice(ctx context.Context, params ports.CreateInvoiceParams) (*domain.Invoice, error) {
	// 1. Create domain entity with validation
	invoice, err := domain.NewInvoice(domain.InvoiceParams{
		OrgID:      params.OrgID,
		ClientName: params.ClientName,
		Amount:     params.Amount,
	})
	if err != nil {
		return nil, err
	}

	// 2. Persist the invoice
	created, err := s.invoiceRepo.Create(ctx, invoice)
	if err != nil {
		return nil, err
	}

	// 3. Broadcast real-time event
	s.broadcaster.InvoiceCreated(created, params.ActorID)

	return created, nil
}

// GetInvoice retrieves a single invoice scoped to the caller's org. An
// invoice belonging to another org reads as not found so ids do not leak.
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID, orgID int64) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.OrgID != orgID {
		return nil, apperrors.ErrInvoiceNotFound
	}
	return invoice, nil
}

// MarkPaid settles an invoice with business rule enforcement
func (s *InvoiceService) MarkPaid(ctx context.Context, invoiceID, orgID, actorID int64) (*domain.Invoice, error) {
	// 1. Fetch the invoice, scoped to the caller's org
	invoice, err := s.GetInvoice(ctx, invoiceID, orgID)
	if err != nil {
		return nil, err
	}

	// 2. Apply payment (domain rejects double payment and void invoices)
	if err := invoice.MarkPaid(); err != nil {
		return nil, err
	}

	// 3. Persist changes
	updated, err := s.invoiceRepo.Update(ctx, invoice)
	if err != nil {
		return nil, err
	}

	// 4. Broadcast real-time event
	s.broadcaster.InvoicePaid(updated, actorID)

	return updated, nil
}

// ListInvoices retrieves the org's invoices, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, params ports.ListParams) ([]*domain.Invoice, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 50
	}
	return s.invoiceRepo.ListByOrg(ctx, params)
}
