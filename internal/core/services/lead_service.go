package services

import (
	"context"

	"github.com/lorrc/erp-backend/internal/core/domain"
	apperrors "github.com/lorrc/erp-backend/internal/core/errors"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

// LeadService implements business logic for the CRM pipeline
type LeadService struct {
	leadRepo    ports.LeadRepository
	broadcaster ports.EventBroadcaster
}

var _ ports.LeadService = (*LeadService)(nil)

// NewLeadService creates a new lead service
func NewLeadService(leadRepo ports.LeadRepository, broadcaster ports.EventBroadcaster) ports.LeadService {
	return &LeadService{
		leadRepo:    leadRepo,
		broadcaster: broadcaster,
	}
}

// CreateLead handles the use case for capturing a new lead
func (s *LeadService) CreateLead(ctx context.Context, params ports.CreateLeadParams) (*domain.Lead, error) {
	// 1. Create domain entity with validation
	lead, err := domain.NewLead(domain.LeadParams{
		OrgID:   params.OrgID,
		Name:    params.Name,
		Email:   params.Email,
		Phone:   params.Phone,
		Source:  params.Source,
		OwnerID: params.OwnerID,
	})
	if err != nil {
		return nil, err // Validation errors are returned here
	}

	// 2. Persist the lead
	created, err := s.leadRepo.Create(ctx, lead)
	if err != nil {
		return nil, err
	}

	// 3. Broadcast real-time event. Emission is non-blocking and absorbs
	// its own failures, so the committed mutation is never affected.
	s.broadcaster.LeadCreated(created, params.ActorID)

	return created, nil
}

// GetLead retrieves a single lead scoped to the caller's org. A lead
// belonging to another org reads as not found so ids do not leak.
func (s *LeadService) GetLead(ctx context.Context, leadID, orgID int64) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.OrgID != orgID {
		return nil, apperrors.ErrLeadNotFound
	}
	return lead, nil
}

// UpdateStatus moves a lead through the pipeline with business rule enforcement
func (s *LeadService) UpdateStatus(ctx context.Context, params ports.UpdateLeadStatusParams) (*domain.Lead, error) {
	// 1. Fetch the lead, scoped to the caller's org
	lead, err := s.GetLead(ctx, params.LeadID, params.OrgID)
	if err != nil {
		return nil, err
	}

	// 2. Apply status change (domain validates the transition)
	if err := lead.UpdateStatus(params.Status); err != nil {
		return nil, err
	}

	// 3. Persist changes
	updated, err := s.leadRepo.Update(ctx, lead)
	if err != nil {
		return nil, err
	}

	// 4. Broadcast real-time event
	s.broadcaster.LeadStatusChanged(updated, params.ActorID)

	return updated, nil
}

// ListLeads retrieves the org's leads, newest first
func (s *LeadService) ListLeads(ctx context.Context, params ports.ListParams) ([]*domain.Lead, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 50
	}
	return s.leadRepo.ListByOrg(ctx, params)
}
