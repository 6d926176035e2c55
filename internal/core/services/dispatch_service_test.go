package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/erp-backend/internal/core/domain"
	"github.com/lorrc/erp-backend/internal/core/mocks"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

func TestDispatchService_CreateJob(t *testing.T) {
	t.Run("creates job and broadcasts event", func(t *testing.T) {
		dispatchRepo := mocks.NewMockDispatchRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewDispatchService(dispatchRepo, broadcaster)

		created := &domain.DispatchJob{ID: 21, OrgID: 7, Title: "Install HVAC", Status: domain.DispatchPending}
		dispatchRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DispatchJob")).Return(created, nil)
		broadcaster.On("DispatchCreated", created, int64(3)).Return()

		job, err := svc.CreateJob(context.Background(), ports.CreateDispatchParams{
			OrgID:   7,
			Title:   "Install HVAC",
			ActorID: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(21), job.ID)
		broadcaster.AssertExpectations(t)
	})

	t.Run("rejects job without title", func(t *testing.T) {
		dispatchRepo := mocks.NewMockDispatchRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewDispatchService(dispatchRepo, broadcaster)

		_, err := svc.CreateJob(context.Background(), ports.CreateDispatchParams{OrgID: 7, ActorID: 3})

		assert.ErrorIs(t, err, domain.ErrDispatchTitleRequired)
		dispatchRepo.AssertNotCalled(t, "Create")
		broadcaster.AssertNotCalled(t, "DispatchCreated")
	})
}

func TestDispatchService_AssignJob(t *testing.T) {
	t.Run("assigns technician and broadcasts", func(t *testing.T) {
		dispatchRepo := mocks.NewMockDispatchRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewDispatchService(dispatchRepo, broadcaster)

		existing := &domain.DispatchJob{ID: 21, OrgID: 7, Title: "Install HVAC", Status: domain.DispatchPending}
		dispatchRepo.On("GetByID", mock.Anything, int64(21)).Return(existing, nil)
		dispatchRepo.On("Update", mock.Anything, existing).Return(existing, nil)
		broadcaster.On("DispatchAssigned", existing, int64(3)).Return()

		job, err := svc.AssignJob(context.Background(), ports.AssignDispatchParams{
			JobID:        21,
			OrgID:        7,
			TechnicianID: 5,
			ActorID:      3,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.DispatchAssigned, job.Status)
		require.NotNil(t, job.TechnicianID)
		assert.Equal(t, int64(5), *job.TechnicianID)
		broadcaster.AssertExpectations(t)
	})

	t.Run("rejects assignment on a closed job", func(t *testing.T) {
		dispatchRepo := mocks.NewMockDispatchRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewDispatchService(dispatchRepo, broadcaster)

		existing := &domain.DispatchJob{ID: 21, OrgID: 7, Title: "Install HVAC", Status: domain.DispatchCompleted}
		dispatchRepo.On("GetByID", mock.Anything, int64(21)).Return(existing, nil)

		_, err := svc.AssignJob(context.Background(), ports.AssignDispatchParams{JobID: 21, OrgID: 7, TechnicianID: 5, ActorID: 3})

		assert.ErrorIs(t, err, domain.ErrDispatchClosed)
		dispatchRepo.AssertNotCalled(t, "Update")
		broadcaster.AssertNotCalled(t, "DispatchAssigned")
	})
}

func TestDispatchService_CompleteJob(t *testing.T) {
	dispatchRepo := mocks.NewMockDispatchRepository()
	broadcaster := mocks.NewMockEventBroadcaster()
	svc := NewDispatchService(dispatchRepo, broadcaster)

	existing := &domain.DispatchJob{ID: 21, OrgID: 7, Title: "Install HVAC", Status: domain.DispatchInProgress}
	dispatchRepo.On("GetByID", mock.Anything, int64(21)).Return(existing, nil)
	dispatchRepo.On("Update", mock.Anything, existing).Return(existing, nil)
	broadcaster.On("DispatchCompleted", existing, int64(3)).Return()

	job, err := svc.CompleteJob(context.Background(), 21, 7, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.DispatchCompleted, job.Status)
	broadcaster.AssertExpectations(t)
}
