package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	t.Run("creates lead in new status", func(t *testing.T) {
		lead, err := NewLead(LeadParams{
			OrgID:  7,
			Name:   "Acme Co",
			Email:  "ops@acme.test",
			Source: "referral",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), lead.OrgID)
		assert.Equal(t, LeadStatusNew, lead.Status)
		assert.False(t, lead.CreatedAt.IsZero())
		assert.Nil(t, lead.UpdatedAt)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := NewLead(LeadParams{OrgID: 7})
		assert.ErrorIs(t, err, ErrLeadNameRequired)
	})
}

func TestLeadUpdateStatus(t *testing.T) {
	lead, err := NewLead(LeadParams{OrgID: 7, Name: "Acme Co"})
	require.NoError(t, err)

	require.NoError(t, lead.UpdateStatus(LeadStatusQualified))
	assert.Equal(t, LeadStatusQualified, lead.Status)
	assert.NotNil(t, lead.UpdatedAt)

	err = lead.UpdateStatus(LeadStatus("frozen"))
	assert.ErrorIs(t, err, ErrInvalidLeadStatus)
	assert.Equal(t, LeadStatusQualified, lead.Status, "invalid transition leaves status untouched")
}

func TestLeadSnapshot(t *testing.T) {
	lead := &Lead{ID: 11, OrgID: 7, Name: "Acme Co", Status: LeadStatusContacted}

	snap := lead.Snapshot()
	assert.Equal(t, int64(11), snap["id"])
	assert.Equal(t, "Acme Co", snap["name"])
	assert.Equal(t, "contacted", snap["status"])
}
