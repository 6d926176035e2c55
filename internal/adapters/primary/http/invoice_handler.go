package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/erp-backend/internal/adapters/primary/validation"
	"github.com/lorrc/erp-backend/internal/core/domain"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

// InvoiceHandler handles invoicing requests
type InvoiceHandler struct {
	invoiceService ports.InvoiceService
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoiceService ports.InvoiceService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		errorHandler:   errorHandler,
		logger:         logger,
	}
}

// CreateInvoiceRequest is the request body for issuing an invoice
type CreateInvoiceRequest struct {
	ClientName string  `json:"clientName"`
	Amount     float64 `json:"amount"`
}

// Validate validates the create invoice request
func (r *CreateInvoiceRequest) Validate() error {
	v := validation.NewValidator()
	v.Required("clientName", r.ClientName).
		MaxLength("clientName", r.ClientName, 255).
		PositiveFloat("amount", r.Amount)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// InvoiceDTO is the public representation of an invoice
type InvoiceDTO struct {
	ID         int64   `json:"id"`
	OrgID      int64   `json:"orgId"`
	ClientName string  `json:"clientName"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	PaidAt     string  `json:"paidAt,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt,omitempty"`
}

func toInvoiceDTO(invoice *domain.Invoice) InvoiceDTO {
	dto := InvoiceDTO{
		ID:         invoice.ID,
		OrgID:      invoice.OrgID,
		ClientName: invoice.ClientName,
		Amount:     invoice.Amount,
		Status:     string(invoice.Status),
		CreatedAt:  invoice.CreatedAt.UTC().Format(time.RFC3339),
	}
	if invoice.PaidAt != nil {
		dto.PaidAt = invoice.PaidAt.UTC().Format(time.RFC3339)
	}
	if invoice.UpdatedAt != nil {
		dto.UpdatedAt = invoice.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

// Router sets up a new chi Router for all invoice routes.
func (h *InvoiceHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all invoice endpoints.
func (h *InvoiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Post("/pay", h.HandleMarkPaid)
	})
}

// HandleCreate handles invoice creation
func (h *InvoiceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[CreateInvoiceRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(r.Context(), ports.CreateInvoiceParams{
		OrgID:      claims.OrgID,
		ClientName: req.ClientName,
		Amount:     req.Amount,
		ActorID:    claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("invoice created",
		"request_id", GetRequestID(r.Context()),
		"invoice_id", invoice.ID,
		"org_id", invoice.OrgID,
		"actor_id", claims.UserID,
	)

	WriteCreated(w, toInvoiceDTO(invoice))
}

// HandleGet handles fetching a single invoice
func (h *InvoiceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	invoiceID, err := parseIDParam(r, "id")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	invoice, err := h.invoiceService.GetInvoice(r.Context(), invoiceID, claims.OrgID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, toInvoiceDTO(invoice))
}

// HandleMarkPaid handles settling an invoice
func (h *InvoiceHandler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	invoiceID, err := parseIDParam(r, "id")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	invoice, err := h.invoiceService.MarkPaid(r.Context(), invoiceID, claims.OrgID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("invoice marked paid",
		"request_id", GetRequestID(r.Context()),
		"invoice_id", invoice.ID,
		"actor_id", claims.UserID,
	)

	WriteSuccess(w, toInvoiceDTO(invoice))
}

// HandleList handles listing invoices for the caller's organization
func (h *InvoiceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	pagination := validation.ParsePagination(r, maxListLimit)

	invoices, err := h.invoiceService.ListInvoices(r.Context(), ports.ListParams{
		OrgID:  claims.OrgID,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	dtos := make([]InvoiceDTO, 0, len(invoices))
	for _, invoice := range invoices {
		dtos = append(dtos, toInvoiceDTO(invoice))
	}

	WriteList(w, dtos)
}
