package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/erp-backend/internal/core/domain"
	apperrors "github.com/lorrc/erp-backend/internal/core/errors"
	"github.com/lorrc/erp-backend/internal/core/mocks"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

func TestLeadService_CreateLead(t *testing.T) {
	t.Run("creates lead and broadcasts event", func(t *testing.T) {
		leadRepo := mocks.NewMockLeadRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewLeadService(leadRepo, broadcaster)

		created := &domain.Lead{ID: 11, OrgID: 7, Name: "Acme Co", Status: domain.LeadStatusNew}
		leadRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Lead")).Return(created, nil)
		broadcaster.On("LeadCreated", created, int64(3)).Return()

		lead, err := svc.CreateLead(context.Background(), ports.CreateLeadParams{
			OrgID:   7,
			Name:    "Acme Co",
			ActorID: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(11), lead.ID)
		leadRepo.AssertExpectations(t)
		broadcaster.AssertExpectations(t)
	})

	t.Run("rejects lead without name and stays silent", func(t *testing.T) {
		leadRepo := mocks.NewMockLeadRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewLeadService(leadRepo, broadcaster)

		_, err := svc.CreateLead(context.Background(), ports.CreateLeadParams{OrgID: 7, ActorID: 3})

		assert.ErrorIs(t, err, domain.ErrLeadNameRequired)
		leadRepo.AssertNotCalled(t, "Create")
		broadcaster.AssertNotCalled(t, "LeadCreated")
	})

	t.Run("does not broadcast on persistence failure", func(t *testing.T) {
		leadRepo := mocks.NewMockLeadRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewLeadService(leadRepo, broadcaster)

		leadRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Lead")).Return(nil, errors.New("db down"))

		_, err := svc.CreateLead(context.Background(), ports.CreateLeadParams{OrgID: 7, Name: "Acme Co", ActorID: 3})

		assert.Error(t, err)
		broadcaster.AssertNotCalled(t, "LeadCreated")
	})
}

func TestLeadService_UpdateStatus(t *testing.T) {
	t.Run("updates status and broadcasts", func(t *testing.T) {
		leadRepo := mocks.NewMockLeadRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewLeadService(leadRepo, broadcaster)

		existing := &domain.Lead{ID: 11, OrgID: 7, Name: "Acme Co", Status: domain.LeadStatusNew}
		leadRepo.On("GetByID", mock.Anything, int64(11)).Return(existing, nil)
		leadRepo.On("Update", mock.Anything, existing).Return(existing, nil)
		broadcaster.On("LeadStatusChanged", existing, int64(3)).Return()

		lead, err := svc.UpdateStatus(context.Background(), ports.UpdateLeadStatusParams{
			LeadID:  11,
			OrgID:   7,
			Status:  domain.LeadStatusQualified,
			ActorID: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.LeadStatusQualified, lead.Status)
		broadcaster.AssertExpectations(t)
	})

	t.Run("hides leads belonging to another org", func(t *testing.T) {
		leadRepo := mocks.NewMockLeadRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewLeadService(leadRepo, broadcaster)

		existing := &domain.Lead{ID: 11, OrgID: 99, Name: "Acme Co", Status: domain.LeadStatusNew}
		leadRepo.On("GetByID", mock.Anything, int64(11)).Return(existing, nil)

		_, err := svc.UpdateStatus(context.Background(), ports.UpdateLeadStatusParams{
			LeadID:  11,
			OrgID:   7,
			Status:  domain.LeadStatusQualified,
			ActorID: 3,
		})

		assert.ErrorIs(t, err, apperrors.ErrLeadNotFound)
		leadRepo.AssertNotCalled(t, "Update")
		broadcaster.AssertNotCalled(t, "LeadStatusChanged")
	})

	t.Run("rejects invalid status without persisting", func(t *testing.T) {
		leadRepo := mocks.NewMockLeadRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewLeadService(leadRepo, broadcaster)

		existing := &domain.Lead{ID: 11, OrgID: 7, Name: "Acme Co", Status: domain.LeadStatusNew}
		leadRepo.On("GetByID", mock.Anything, int64(11)).Return(existing, nil)

		_, err := svc.UpdateStatus(context.Background(), ports.UpdateLeadStatusParams{
			LeadID:  11,
			OrgID:   7,
			Status:  domain.LeadStatus("frozen"),
			ActorID: 3,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidLeadStatus)
		leadRepo.AssertNotCalled(t, "Update")
		broadcaster.AssertNotCalled(t, "LeadStatusChanged")
	})
}

func TestLeadService_ListLeads(t *testing.T) {
	leadRepo := mocks.NewMockLeadRepository()
	broadcaster := mocks.NewMockEventBroadcaster()
	svc := NewLeadService(leadRepo, broadcaster)

	// Out-of-range limits are clamped to the default page size.
	leadRepo.On("ListByOrg", mock.Anything, ports.ListParams{OrgID: 7, Limit: 50}).
		Return([]*domain.Lead{}, nil)

	_, err := svc.ListLeads(context.Background(), ports.ListParams{OrgID: 7, Limit: 0})
	require.NoError(t, err)
	leadRepo.AssertExpectations(t)
}
