package domain

import (
	"errors"
	"time"
)

// Pre-defined errors for lead validation.
var (
	ErrLeadNameRequired  = errors.New("lead name is required")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

// LeadStatus represents the pipeline stage of a CRM lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

// Valid reports whether the status is a known pipeline stage.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// Lead is a CRM prospect owned by an organization.
type Lead struct {
	ID        int64
	OrgID     int64
	Name      string
	Email     string
	Phone     string
	Source    string
	Status    LeadStatus
	OwnerID   *int64
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// LeadParams holds the input for creating a new lead.
type LeadParams struct {
	OrgID   int64
	Name    string
	Email   string
	Phone   string
	Source  string
	OwnerID *int64
}

// NewLead is a factory function to create a valid new lead.
func NewLead(params LeadParams) (*Lead, error) {
	if params.Name == "" {
		return nil, ErrLeadNameRequired
	}

	return &Lead{
		OrgID:     params.OrgID,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Source:    params.Source,
		Status:    LeadStatusNew,
		OwnerID:   params.OwnerID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UpdateStatus moves the lead to a new pipeline stage.
func (l *Lead) UpdateStatus(status LeadStatus) error {
	if !status.Valid() {
		return ErrInvalidLeadStatus
	}
	l.Status = status
	now := time.Now().UTC()
	l.UpdatedAt = &now
	return nil
}

// Snapshot returns the lead's fields as event payload data.
func (l *Lead) Snapshot() map[string]any {
	return map[string]any{
		"id":     l.ID,
		"orgId":  l.OrgID,
		"name":   l.Name,
		"email":  l.Email,
		"phone":  l.Phone,
		"source": l.Source,
		"status": string(l.Status),
	}
}
