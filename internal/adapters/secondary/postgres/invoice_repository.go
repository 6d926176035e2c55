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

// InvoiceRepository is the secondary adapter for invoice persistence.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

var _ ports.InvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(pool *pgxpool.Pool) ports.InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `id, organization_id, client_name, amount, status, paid_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		invoice   domain.Invoice
		status    string
		paidAt    pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&invoice.ID,
		&invoice.OrgID,
		&invoice.ClientName,
		&invoice.Amount,
		&status,
		&paidAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	invoice.Status = domain.InvoiceStatus(status)
	invoice.PaidAt = utils.FromNullTimestamptz(paidAt)
	invoice.CreatedAt = createdAt.Time
	invoice.UpdatedAt = utils.FromNullTimestamptz(updatedAt)

	return &invoice, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO invoices (organization_id, client_name, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+invoiceColumns,
		invoice.OrgID,
		invoice.ClientName,
		invoice.Amount,
		string(invoice.Status),
	)

	return scanInvoice(row)
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`,
		id,
	)

	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoice, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE invoices
		SET client_name = $2, amount = $3, status = $4, paid_at = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+invoiceColumns,
		invoice.ID,
		invoice.ClientName,
		invoice.Amount,
		string(invoice.Status),
		utils.ToNullTimestamptz(invoice.PaidAt),
	)

	updated, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *InvoiceRepository) ListByOrg(ctx context.Context, params ports.ListParams) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
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

	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}
