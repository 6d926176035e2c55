package domain

import (
	"errors"
	"time"
)

// Pre-defined errors for dispatch validation.
var (
	ErrDispatchTitleRequired = errors.New("dispatch title is required")
	ErrDispatchClosed        = errors.New("dispatch job is already completed or canceled")
)

// DispatchStatus represents the lifecycle state of a field-service job.
type DispatchStatus string

const (
	DispatchPending    DispatchStatus = "pending"
	DispatchAssigned   DispatchStatus = "assigned"
	DispatchInProgress DispatchStatus = "in_progress"
	DispatchCompleted  DispatchStatus = "completed"
	DispatchCanceled   DispatchStatus = "canceled"
)

// DispatchJob is a scheduled field-service job, optionally tied to a lead.
type DispatchJob struct {
	ID           int64
	OrgID        int64
	LeadID       *int64
	Title        string
	Address      string
	Status       DispatchStatus
	TechnicianID *int64
	ScheduledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// DispatchParams holds the input for creating a new dispatch job.
type DispatchParams struct {
	OrgID       int64
	LeadID      *int64
	Title       string
	Address     string
	ScheduledAt *time.Time
}

// NewDispatchJob is a factory function to create a valid new job.
func NewDispatchJob(params DispatchParams) (*DispatchJob, error) {
	if params.Title == "" {
		return nil, ErrDispatchTitleRequired
	}

	return &DispatchJob{
		OrgID:       params.OrgID,
		LeadID:      params.LeadID,
		Title:       params.Title,
		Address:     params.Address,
		Status:      DispatchPending,
		ScheduledAt: params.ScheduledAt,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// closed reports whether the job has reached a terminal state.
func (d *DispatchJob) closed() bool {
	return d.Status == DispatchCompleted || d.Status == DispatchCanceled
}

// Assign hands the job to a technician.
func (d *DispatchJob) Assign(technicianID int64) error {
	if d.closed() {
		return ErrDispatchClosed
	}
	d.TechnicianID = &technicianID
	d.Status = DispatchAssigned
	now := time.Now().UTC()
	d.UpdatedAt = &now
	return nil
}

// Complete marks the job as done.
func (d *DispatchJob) Complete() error {
	if d.closed() {
		return ErrDispatchClosed
	}
	d.Status = DispatchCompleted
	now := time.Now().UTC()
	d.UpdatedAt = &now
	return nil
}

// Snapshot returns the job's fields as event payload data.
func (d *DispatchJob) Snapshot() map[string]any {
	data := map[string]any{
		"id":      d.ID,
		"orgId":   d.OrgID,
		"title":   d.Title,
		"address": d.Address,
		"status":  string(d.Status),
	}
	if d.LeadID != nil {
		data["leadId"] = *d.LeadID
	}
	if d.TechnicianID != nil {
		data["technicianId"] = *d.TechnicianID
	}
	if d.ScheduledAt != nil {
		data["scheduledAt"] = d.ScheduledAt.UTC().Format(time.RFC3339)
	}
	return data
}
