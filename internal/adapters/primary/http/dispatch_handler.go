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

// DispatchHandler handles field-dispatch requests
type DispatchHandler struct {
	dispatchService ports.DispatchService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(
	dispatchService ports.DispatchService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *DispatchHandler {
	return &DispatchHandler{
		dispatchService: dispatchService,
		errorHandler:    errorHandler,
		logger:          logger,
	}
}

// CreateDispatchRequest is the request body for creating a dispatch job
type CreateDispatchRequest struct {
	Title       string     `json:"title"`
	Address     string     `json:"address,omitempty"`
	LeadID      *int64     `json:"leadId,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// Validate validates the create dispatch request
func (r *CreateDispatchRequest) Validate() error {
	v := validation.NewValidator()
	v.Required("title", r.Title).
		MaxLength("title", r.Title, 255).
		MaxLength("address", r.Address, 500)

	if r.LeadID != nil {
		v.PositiveID("leadId", *r.LeadID)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AssignDispatchRequest is the request body for assigning a technician
type AssignDispatchRequest struct {
	TechnicianID int64 `json:"technicianId"`
}

// Validate validates the assignment request
func (r *AssignDispatchRequest) Validate() error {
	v := validation.NewValidator()
	v.PositiveID("technicianId", r.TechnicianID)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// DispatchDTO is the public representation of a dispatch job
type DispatchDTO struct {
	ID           int64  `json:"id"`
	OrgID        int64  `json:"orgId"`
	LeadID       *int64 `json:"leadId,omitempty"`
	Title        string `json:"title"`
	Address      string `json:"address,omitempty"`
	Status       string `json:"status"`
	TechnicianID *int64 `json:"technicianId,omitempty"`
	ScheduledAt  string `json:"scheduledAt,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

func toDispatchDTO(job *domain.DispatchJob) DispatchDTO {
	dto := DispatchDTO{
		ID:           job.ID,
		OrgID:        job.OrgID,
		LeadID:       job.LeadID,
		Title:        job.Title,
		Address:      job.Address,
		Status:       string(job.Status),
		TechnicianID: job.TechnicianID,
		CreatedAt:    job.CreatedAt.UTC().Format(time.RFC3339),
	}
	if job.ScheduledAt != nil {
		dto.ScheduledAt = job.ScheduledAt.UTC().Format(time.RFC3339)
	}
	if job.UpdatedAt != nil {
		dto.UpdatedAt = job.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

// Router sets up a new chi Router for all dispatch routes.
func (h *DispatchHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all dispatch endpoints.
func (h *DispatchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)

	r.Route("/{id}", func(r chi.Router) {
		r.Post("/assign", h.HandleAssign)
		r.Post("/complete", h.HandleComplete)
	})
}

// HandleCreate handles dispatch job creation
func (h *DispatchHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[CreateDispatchRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	job, err := h.dispatchService.CreateJob(r.Context(), ports.CreateDispatchParams{
		OrgID:       claims.OrgID,
		LeadID:      req.LeadID,
		Title:       req.Title,
		Address:     req.Address,
		ScheduledAt: req.ScheduledAt,
		ActorID:     claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("dispatch job created",
		"request_id", GetRequestID(r.Context()),
		"job_id", job.ID,
		"org_id", job.OrgID,
		"actor_id", claims.UserID,
	)

	WriteCreated(w, toDispatchDTO(job))
}

// HandleAssign handles assigning a job to a technician
func (h *DispatchHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	jobID, err := parseIDParam(r, "id")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AssignDispatchRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	job, err := h.dispatchService.AssignJob(r.Context(), ports.AssignDispatchParams{
		JobID:        jobID,
		OrgID:        claims.OrgID,
		TechnicianID: req.TechnicianID,
		ActorID:      claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("dispatch job assigned",
		"request_id", GetRequestID(r.Context()),
		"job_id", job.ID,
		"technician_id", req.TechnicianID,
		"actor_id", claims.UserID,
	)

	WriteSuccess(w, toDispatchDTO(job))
}

// HandleComplete handles marking a job as done
func (h *DispatchHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	jobID, err := parseIDParam(r, "id")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	job, err := h.dispatchService.CompleteJob(r.Context(), jobID, claims.OrgID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("dispatch job completed",
		"request_id", GetRequestID(r.Context()),
		"job_id", job.ID,
		"actor_id", claims.UserID,
	)

	WriteSuccess(w, toDispatchDTO(job))
}

// HandleList handles listing dispatch jobs for the caller's organization
func (h *DispatchHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	pagination := validation.ParsePagination(r, maxListLimit)

	jobs, err := h.dispatchService.ListJobs(r.Context(), ports.ListParams{
		OrgID:  claims.OrgID,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	dtos := make([]DispatchDTO, 0, len(jobs))
	for _, job := range jobs {
		dtos = append(dtos, toDispatchDTO(job))
	}

	WriteList(w, dtos)
}
