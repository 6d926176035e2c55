package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/lorrc/erp-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/erp-backend/internal/adapters/primary/validation"
	"github.com/lorrc/erp-backend/internal/auth"
	"github.com/lorrc/erp-backend/internal/core/domain"
	apperrors "github.com/lorrc/erp-backend/internal/core/errors"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

const maxListLimit = 100

// LeadHandler handles CRM lead requests
type LeadHandler struct {
	leadService  ports.LeadService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(
	leadService ports.LeadService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *LeadHandler {
	return &LeadHandler{
		leadService:  leadService,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateLeadRequest is the request body for creating a lead
type CreateLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Source  string `json:"source,omitempty"`
	OwnerID *int64 `json:"ownerId,omitempty"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	v := validation.NewValidator()
	v.Required("name", r.Name).
		MaxLength("name", r.Name, 255).
		Email("email", r.Email).
		MaxLength("source", r.Source, 100)

	if r.OwnerID != nil {
		v.PositiveID("ownerId", *r.OwnerID)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateLeadStatusRequest is the request body for a status change
type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the status change request
func (r *UpdateLeadStatusRequest) Validate() error {
	v := validation.NewValidator()
	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"new", "contacted", "qualified", "won", "lost"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// LeadDTO is the public representation of a lead
type LeadDTO struct {
	ID        int64  `json:"id"`
	OrgID     int64  `json:"orgId"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Source    string `json:"source,omitempty"`
	Status    string `json:"status"`
	OwnerID   *int64 `json:"ownerId,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func toLeadDTO(lead *domain.Lead) LeadDTO {
	dto := LeadDTO{
		ID:        lead.ID,
		OrgID:     lead.OrgID,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Source:    lead.Source,
		Status:    string(lead.Status),
		OwnerID:   lead.OwnerID,
		CreatedAt: lead.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lead.UpdatedAt != nil {
		dto.UpdatedAt = lead.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

// Router sets up a new chi Router for all lead routes.
func (h *LeadHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all lead endpoints.
func (h *LeadHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Patch("/status", h.HandleUpdateStatus)
	})
}

// getClaims extracts the authenticated user's claims from the request
func getClaims(r *http.Request) (*auth.Claims, error) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

// parseIDParam parses a numeric path parameter
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError(err, "Invalid "+name+" parameter")
	}
	return id, nil
}

// HandleCreate handles lead creation
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[CreateLeadRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	lead, err := h.leadService.CreateLead(r.Context(), ports.CreateLeadParams{
		OrgID:   claims.OrgID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Source:  req.Source,
		OwnerID: req.OwnerID,
		ActorID: claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("lead created",
		"request_id", GetRequestID(r.Context()),
		"lead_id", lead.ID,
		"org_id", lead.OrgID,
		"actor_id", claims.UserID,
	)

	WriteCreated(w, toLeadDTO(lead))
}

// HandleGet handles fetching a single lead
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	leadID, err := parseIDParam(r, "id")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	lead, err := h.leadService.GetLead(r.Context(), leadID, claims.OrgID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, toLeadDTO(lead))
}

// HandleUpdateStatus handles moving a lead through the pipeline
func (h *LeadHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	leadID, err := parseIDParam(r, "id")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateLeadStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	lead, err := h.leadService.UpdateStatus(r.Context(), ports.UpdateLeadStatusParams{
		LeadID:  leadID,
		OrgID:   claims.OrgID,
		Status:  domain.LeadStatus(req.Status),
		ActorID: claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("lead status updated",
		"request_id", GetRequestID(r.Context()),
		"lead_id", lead.ID,
		"status", string(lead.Status),
		"actor_id", claims.UserID,
	)

	WriteSuccess(w, toLeadDTO(lead))
}

// HandleList handles listing leads for the caller's organization
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	pagination := validation.ParsePagination(r, maxListLimit)

	leads, err := h.leadService.ListLeads(r.Context(), ports.ListParams{
		OrgID:  claims.OrgID,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	dtos := make([]LeadDTO, 0, len(leads))
	for _, lead := range leads {
		dtos = append(dtos, toLeadDTO(lead))
	}

	WriteList(w, dtos)
}
