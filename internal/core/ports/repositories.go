package ports

import (
	"context"

	"github.com/lorrc/erp-backend/internal/core/domain"
)

// UserRepository defines the port for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ListParams holds pagination input shared by the list queries.
type ListParams struct {
	OrgID  int64
	Limit  int
	Offset int
}

// LeadRepository defines the port for lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	Update(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	ListByOrg(ctx context.Context, params ListParams) ([]*domain.Lead, error)
}

// DispatchRepository defines the port for dispatch job persistence.
type DispatchRepository interface {
	Create(ctx context.Context, job *domain.DispatchJob) (*domain.DispatchJob, error)
	GetByID(ctx context.Context, id int64) (*domain.DispatchJob, error)
	Update(ctx context.Context, job *domain.DispatchJob) (*domain.DispatchJob, error)
	ListByOrg(ctx context.Context, params ListParams) ([]*domain.DispatchJob, error)
}

// InvoiceRepository defines the port for invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	ListByOrg(ctx context.Context, params ListParams) ([]*domain.Invoice, error)
}
