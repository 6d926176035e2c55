package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/erp-backend/internal/core/domain"
	apperrors "github.com/lorrc/erp-backend/internal/core/errors"
	"github.com/lorrc/erp-backend/internal/core/ports"
	"github.com/lorrc/erp-backend/internal/core/utils"
)

// DispatchRepository is the secondary adapter for dispatch job persistence.
type DispatchRepository struct {
	pool *pgxpool.Pool
}

var _ ports.DispatchRepository = (*DispatchRepository)(nil)

func NewDispatchRepository(pool *pgxpool.Pool) ports.DispatchRepository {
	return &DispatchRepository{pool: pool}
}

const dispatchColumns = `id, organization_id, lead_id, title, address, status, technician_id, scheduled_at, created_at, updated_at`

func scanDispatch(row pgx.Row) (*domain.DispatchJob, error) {
	var (
		job          domain.DispatchJob
		leadID       pgtype.Int8
		address      pgtype.Text
		status       string
		technicianID pgtype.Int8
		scheduledAt  pgtype.Timestamptz
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := row.Scan(
		&job.ID,
		&job.OrgID,
		&leadID,
		&job.Title,
		&address,
		&status,
		&technicianID,
		&scheduledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.LeadID = utils.FromNullInt8(leadID)
	job.Address = utils.FromString(address)
	job.Status = domain.DispatchStatus(status)
	job.TechnicianID = utils.FromNullInt8(technicianID)
	job.ScheduledAt = utils.FromNullTimestamptz(scheduledAt)
	job.CreatedAt = createdAt.Time
	job.UpdatedAt = utils.FromNullTimestamptz(updatedAt)

	return &job, nil
}

func (r *DispatchRepository) Create(ctx context.Context, job *domain.DispatchJob) (*domain.DispatchJob, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO dispatch_jobs (organization_id, lead_id, title, address, status, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+dispatchColumns,
		job.OrgID,
		utils.ToNullInt8(job.LeadID),
		job.Title,
		utils.ToString(job.Address),
		string(job.Status),
		utils.ToNullTimestamptz(job.ScheduledAt),
	)

	return scanDispatch(row)
}

func (r *DispatchRepository) GetByID(ctx context.Context, id int64) (*domain.DispatchJob, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+dispatchColumns+` FROM dispatch_jobs WHERE id = $1`,
		id,
	)

	job, err := scanDispatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDispatchNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *DispatchRepository) Update(ctx context.Context, job *domain.DispatchJob) (*domain.DispatchJob, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE dispatch_jobs
		SET title = $2, address = $3, status = $4, technician_id = $5, scheduled_at = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+dispatchColumns,
		job.ID,
		job.Title,
		utils.ToString(job.Address),
		string(job.Status),
		utils.ToNullInt8(job.TechnicianID),
		utils.ToNullTimestamptz(job.ScheduledAt),
	)

	updated, err := scanDispatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDispatchNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *DispatchRepository) ListByOrg(ctx context.Context, params ports.ListParams) ([]*domain.DispatchJob, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+dispatchColumns+` FROM dispatch_jobs
		WHERE organization_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		params.OrgID,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.DispatchJob, 0)
	for rows.Next() {
		job, err := scanDispatch(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
