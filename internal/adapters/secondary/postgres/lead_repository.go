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

// LeadRepository is the secondary adapter for lead persistence.
type LeadRepository struct {
	pool *pgxpool.Pool
}

var _ ports.LeadRepository = (*LeadRepository)(nil)

func NewLeadRepository(pool *pgxpool.Pool) ports.LeadRepository {
	return &LeadRepository{pool: pool}
}

const leadColumns = `id, organization_id, name, email, phone, source, status, owner_id, created_at, updated_at`

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var (
		lead      domain.Lead
		email     pgtype.Text
		phone     pgtype.Text
		source    pgtype.Text
		status    string
		ownerID   pgtype.Int8
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&lead.ID,
		&lead.OrgID,
		&lead.Name,
		&email,
		&phone,
		&source,
		&status,
		&ownerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Email = utils.FromString(email)
	lead.Phone = utils.FromString(phone)
	lead.Source = utils.FromString(source)
	lead.Status = domain.LeadStatus(status)
	lead.OwnerID = utils.FromNullInt8(ownerID)
	lead.CreatedAt = createdAt.Time
	lead.UpdatedAt = utils.FromNullTimestamptz(updatedAt)

	return &lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (organization_id, name, email, phone, source, status, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+leadColumns,
		lead.OrgID,
		lead.Name,
		utils.ToString(lead.Email),
		utils.ToString(lead.Phone),
		utils.ToString(lead.Source),
		string(lead.Status),
		utils.ToNullInt8(lead.OwnerID),
	)

	return scanLead(row)
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1`,
		id,
	)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, source = $5, status = $6, owner_id = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		lead.ID,
		lead.Name,
		utils.ToString(lead.Email),
		utils.ToString(lead.Phone),
		utils.ToString(lead.Source),
		string(lead.Status),
		utils.ToNullInt8(lead.OwnerID),
	)

	updated, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLeadNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *LeadRepository) ListByOrg(ctx context.Context, params ports.ListParams) ([]*domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads
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

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}
