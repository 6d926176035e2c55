package services

import (
	"context"

	"github.com/lorrc/erp-backend/internal/core/domain"
	apperrors "github.com/lorrc/erp-backend/internal/core/errors"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

// DispatchService implements business logic for field-service dispatch
type DispatchService struct {
	dispatchRepo ports.DispatchRepository
	broadcaster  ports.EventBroadcaster
}

var _ ports.DispatchService = (*DispatchService)(nil)

// NewDispatchService creates a new dispatch service
func NewDispatchService(dispatchRepo ports.DispatchRepository, broadcaster ports.EventBroadcaster) ports.DispatchService {
	return &DispatchService{
		dispatchRepo: dispatchRepo,
		broadcaster:  broadcaster,
	}
}

// CreateJob handles the use case for scheduling a new job
func (s *DispatchService) CreateJob(ctx context.Context, params ports.CreateDispatchParams) (*domain.DispatchJob, error) {
	// 1. Create domain entity with validation
	job, err := domain.NewDispatchJob(domain.DispatchParams{
		OrgID:       params.OrgID,
		LeadID:      params.LeadID,
		Title:       params.Title,
		Address:     params.Address,
		ScheduledAt: params.ScheduledAt,
	})
	if err != nil {
		return nil, err
	}

	// 2. Persist the job
	created, err := s.dispatchRepo.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	// 3. Broadcast real-time event
	s.broadcaster.DispatchCreated(created, params.ActorID)

	return created, nil
}

// getJob fetches a job scoped to an org. A job belonging to another org
// reads as not found so ids do not leak.
func (s *DispatchService) getJob(ctx context.Context, jobID, orgID int64) (*domain.DispatchJob, error) {
	job, err := s.dispatchRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.OrgID != orgID {
		return nil, apperrors.ErrDispatchNotFound
	}
	return job, nil
}

// AssignJob hands a job to a technician
func (s *DispatchService) AssignJob(ctx context.Context, params ports.AssignDispatchParams) (*domain.DispatchJob, error) {
	// 1. Fetch the job, scoped to the caller's org
	job, err := s.getJob(ctx, params.JobID, params.OrgID)
	if err != nil {
		return nil, err
	}

	// 2. Apply assignment (domain validates business rules)
	if err := job.Assign(params.TechnicianID); err != nil {
		return nil, err
	}

	// 3. Persist changes
	updated, err := s.dispatchRepo.Update(ctx, job)
	if err != nil {
		return nil, err
	}

	// 4. Broadcast real-time event
	s.broadcaster.DispatchAssigned(updated, params.ActorID)

	return updated, nil
}

// CompleteJob marks a job as done
func (s *DispatchService) CompleteJob(ctx context.Context, jobID, orgID, actorID int64) (*domain.DispatchJob, error) {
	job, err := s.getJob(ctx, jobID, orgID)
	if err != nil {
		return nil, err
	}

	if err := job.Complete(); err != nil {
		return nil, err
	}

	updated, err := s.dispatchRepo.Update(ctx, job)
	if err != nil {
		return nil, err
	}

	s.broadcaster.DispatchCompleted(updated, actorID)

	return updated, nil
}

// ListJobs retrieves the org's jobs, newest first
func (s *DispatchService) ListJobs(ctx context.Context, params ports.ListParams) ([]*domain.DispatchJob, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 50
	}
	return s.dispatchRepo.ListByOrg(ctx, params)
}
