package ports

import (
	"context"
	"time"

	"github.com/lorrc/erp-backend/internal/core/domain"
)

// AuthService defines the port for authentication business logic.
type AuthService interface {
	Register(ctx context.Context, params domain.UserRegistrationParams, orgID int64) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// CreateLeadParams defines the input for creating a new lead.
type CreateLeadParams struct {
	OrgID   int64
	Name    string
	Email   string
	Phone   string
	Source  string
	OwnerID *int64
	ActorID int64
}

// UpdateLeadStatusParams defines the input for moving a lead through the pipeline.
type UpdateLeadStatusParams struct {
	LeadID  int64
	OrgID   int64
	Status  domain.LeadStatus
	ActorID int64
}

// LeadService defines the core business operations for CRM leads.
// Every lookup is scoped to the caller's organization; a lead belonging
// to another org is reported as not found.
type LeadService interface {
	CreateLead(ctx context.Context, params CreateLeadParams) (*domain.Lead, error)
	GetLead(ctx context.Context, leadID, orgID int64) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, params UpdateLeadStatusParams) (*domain.Lead, error)
	ListLeads(ctx context.Context, params ListParams) ([]*domain.Lead, error)
}

// CreateDispatchParams defines the input for creating a dispatch job.
type CreateDispatchParams struct {
	OrgID       int64
	LeadID      *int64
	Title       string
	Address     string
	ScheduledAt *time.Time
	ActorID     int64
}

// AssignDispatchParams defines the input for assigning a job to a technician.
type AssignDispatchParams struct {
	JobID        int64
	OrgID        int64
	TechnicianID int64
	ActorID      int64
}

// DispatchService defines the core business operations for field dispatch.
// Lookups are scoped to the caller's organization.
type DispatchService interface {
	CreateJob(ctx context.Context, params CreateDispatchParams) (*domain.DispatchJob, error)
	AssignJob(ctx context.Context, params AssignDispatchParams) (*domain.DispatchJob, error)
	CompleteJob(ctx context.Context, jobID, orgID, actorID int64) (*domain.DispatchJob, error)
	ListJobs(ctx context.Context, params ListParams) ([]*domain.DispatchJob, error)
}

// CreateInvoiceParams defines the input for issuing a new invoice.
type CreateInvoiceParams struct {
	OrgID      int64
	ClientName string
	Amount     float64
	ActorID    int64
}

// InvoiceService defines the core business operations for invoicing.
// Lookups are scoped to the caller's organization.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID, orgID int64) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, invoiceID, orgID, actorID int64) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params ListParams) ([]*domain.Invoice, error)
}

// EventBroadcaster defines the port for pushing real-time events to
// connected browser sessions. All methods are fire-and-forget: they never
// return an error and never block the caller, because the business-logic
// transaction has already committed by the time they run.
type EventBroadcaster interface {
	// Emit fans a domain event out to the org, user, module and global rooms.
	Emit(category domain.EventCategory, eventType domain.EventType, subjectID int64, data map[string]any, meta *domain.EventMetadata)

	// Typed wrappers over Emit used by the services after a committed mutation.
	LeadCreated(lead *domain.Lead, actorID int64)
	LeadUpdated(lead *domain.Lead, actorID int64)
	LeadStatusChanged(lead *domain.Lead, actorID int64)
	DispatchCreated(job *domain.DispatchJob, actorID int64)
	DispatchAssigned(job *domain.DispatchJob, actorID int64)
	DispatchCompleted(job *domain.DispatchJob, actorID int64)
	InvoiceCreated(invoice *domain.Invoice, actorID int64)
	InvoicePaid(invoice *domain.Invoice, actorID int64)

	// SystemAlert broadcasts an operational notice. Level is "info" or "error".
	SystemAlert(message, level string)
}
