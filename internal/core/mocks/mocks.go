package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lorrc/erp-backend/internal/core/domain"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockLeadRepository is a mock implementation of ports.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func NewMockLeadRepository() *MockLeadRepository {
	return &MockLeadRepository{}
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListByOrg(ctx context.Context, params ports.ListParams) ([]*domain.Lead, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lead), args.Error(1)
}

// MockDispatchRepository is a mock implementation of ports.DispatchRepository
type MockDispatchRepository struct {
	mock.Mock
}

func NewMockDispatchRepository() *MockDispatchRepository {
	return &MockDispatchRepository{}
}

func (m *MockDispatchRepository) Create(ctx context.Context, job *domain.DispatchJob) (*domain.DispatchJob, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchJob), args.Error(1)
}

func (m *MockDispatchRepository) GetByID(ctx context.Context, id int64) (*domain.DispatchJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchJob), args.Error(1)
}

func (m *MockDispatchRepository) Update(ctx context.Context, job *domain.DispatchJob) (*domain.DispatchJob, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchJob), args.Error(1)
}

func (m *MockDispatchRepository) ListByOrg(ctx context.Context, params ports.ListParams) ([]*domain.DispatchJob, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DispatchJob), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of ports.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByOrg(ctx context.Context, params ports.ListParams) ([]*domain.Invoice, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

// MockLeadService is a mock implementation of ports.LeadService
type MockLeadService struct {
	mock.Mock
}

func NewMockLeadService() *MockLeadService {
	return &MockLeadService{}
}

func (m *MockLeadService) CreateLead(ctx context.Context, params ports.CreateLeadParams) (*domain.Lead, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) GetLead(ctx context.Context, leadID, orgID int64) (*domain.Lead, error) {
	args := m.Called(ctx, leadID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) UpdateStatus(ctx context.Context, params ports.UpdateLeadStatusParams) (*domain.Lead, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) ListLeads(ctx context.Context, params ports.ListParams) ([]*domain.Lead, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lead), args.Error(1)
}

// MockDispatchService is a mock implementation of ports.DispatchService
type MockDispatchService struct {
	mock.Mock
}

func NewMockDispatchService() *MockDispatchService {
	return &MockDispatchService{}
}

func (m *MockDispatchService) CreateJob(ctx context.Context, params ports.CreateDispatchParams) (*domain.DispatchJob, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchJob), args.Error(1)
}

func (m *MockDispatchService) AssignJob(ctx context.Context, params ports.AssignDispatchParams) (*domain.DispatchJob, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchJob), args.Error(1)
}

func (m *MockDispatchService) CompleteJob(ctx context.Context, jobID, orgID, actorID int64) (*domain.DispatchJob, error) {
	args := m.Called(ctx, jobID, orgID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchJob), args.Error(1)
}

func (m *MockDispatchService) ListJobs(ctx context.Context, params ports.ListParams) ([]*domain.DispatchJob, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DispatchJob), args.Error(1)
}

// MockInvoiceService is a mock implementation of ports.InvoiceService
type MockInvoiceService struct {
	mock.Mock
}

func NewMockInvoiceService() *MockInvoiceService {
	return &MockInvoiceService{}
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, params ports.CreateInvoiceParams) (*domain.Invoice, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, invoiceID, orgID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) MarkPaid(ctx context.Context, invoiceID, orgID, actorID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, orgID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, params ports.ListParams) ([]*domain.Invoice, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Emit(category domain.EventCategory, eventType domain.EventType, subjectID int64, data map[string]any, meta *domain.EventMetadata) {
	m.Called(category, eventType, subjectID, data, meta)
}

func (m *MockEventBroadcaster) LeadCreated(lead *domain.Lead, actorID int64) {
	m.Called(lead, actorID)
}

func (m *MockEventBroadcaster) LeadUpdated(lead *domain.Lead, actorID int64) {
	m.Called(lead, actorID)
}

func (m *MockEventBroadcaster) LeadStatusChanged(lead *domain.Lead, actorID int64) {
	m.Called(lead, actorID)
}

func (m *MockEventBroadcaster) DispatchCreated(job *domain.DispatchJob, actorID int64) {
	m.Called(job, actorID)
}

func (m *MockEventBroadcaster) DispatchAssigned(job *domain.DispatchJob, actorID int64) {
	m.Called(job, actorID)
}

func (m *MockEventBroadcaster) DispatchCompleted(job *domain.DispatchJob, actorID int64) {
	m.Called(job, actorID)
}

func (m *MockEventBroadcaster) InvoiceCreated(invoice *domain.Invoice, actorID int64) {
	m.Called(invoice, actorID)
}

func (m *MockEventBroadcaster) InvoicePaid(invoice *domain.Invoice, actorID int64) {
	m.Called(invoice, actorID)
}

func (m *MockEventBroadcaster) SystemAlert(message, level string) {
	m.Called(message, level)
}
