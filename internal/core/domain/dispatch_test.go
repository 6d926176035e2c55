package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchJob(t *testing.T) {
	t.Run("creates pending job", func(t *testing.T) {
		leadID := int64(11)
		when := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

		job, err := NewDispatchJob(DispatchParams{
			OrgID:       7,
			LeadID:      &leadID,
			Title:       "Install HVAC",
			Address:     "12 Main St",
			ScheduledAt: &when,
		})

		require.NoError(t, err)
		assert.Equal(t, DispatchPending, job.Status)
		assert.Nil(t, job.TechnicianID)
		require.NotNil(t, job.LeadID)
		assert.Equal(t, int64(11), *job.LeadID)
	})

	t.Run("requires a title", func(t *testing.T) {
		_, err := NewDispatchJob(DispatchParams{OrgID: 7})
		assert.ErrorIs(t, err, ErrDispatchTitleRequired)
	})
}

func TestDispatchAssign(t *testing.T) {
	job, err := NewDispatchJob(DispatchParams{OrgID: 7, Title: "Install HVAC"})
	require.NoError(t, err)

	require.NoError(t, job.Assign(5))
	assert.Equal(t, DispatchAssigned, job.Status)
	require.NotNil(t, job.TechnicianID)
	assert.Equal(t, int64(5), *job.TechnicianID)

	// Reassignment before completion is allowed.
	require.NoError(t, job.Assign(6))
	assert.Equal(t, int64(6), *job.TechnicianID)
}

func TestDispatchComplete(t *testing.T) {
	job, err := NewDispatchJob(DispatchParams{OrgID: 7, Title: "Install HVAC"})
	require.NoError(t, err)

	require.NoError(t, job.Complete())
	assert.Equal(t, DispatchCompleted, job.Status)

	assert.ErrorIs(t, job.Complete(), ErrDispatchClosed)
	assert.ErrorIs(t, job.Assign(5), ErrDispatchClosed)
}

func TestDispatchSnapshot(t *testing.T) {
	job, err := NewDispatchJob(DispatchParams{OrgID: 7, Title: "Install HVAC"})
	require.NoError(t, err)

	snap := job.Snapshot()
	assert.Equal(t, "Install HVAC", snap["title"])
	assert.Equal(t, "pending", snap["status"])
	assert.NotContains(t, snap, "technicianId")
	assert.NotContains(t, snap, "leadId")

	require.NoError(t, job.Assign(5))
	snap = job.Snapshot()
	assert.Equal(t, int64(5), snap["technicianId"])
}
