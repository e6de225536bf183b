package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/BruksfildServices01/mechapp/internal/domain/appointment"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/admin"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// AdminReports runs the reporting queries on the pgx pool.
type AdminReports struct {
	pool *pgxpool.Pool
}

func NewAdminReports(pool *pgxpool.Pool) *AdminReports {
	return &AdminReports{pool: pool}
}

func (r *AdminReports) Stats(ctx context.Context) (admin.Stats, error) {
	query, args, err := psql.
		Select().
		Column(sq.Expr("(SELECT COUNT(*) FROM users WHERE role = ?)", models.RoleClient)).
		Column(sq.Expr("(SELECT COUNT(*) FROM users WHERE role = ?)", models.RoleMechanic)).
		Column(sq.Expr("(SELECT COUNT(*) FROM users WHERE role = ? AND validated)", models.RoleMechanic)).
		Column(sq.Expr("(SELECT COUNT(*) FROM certificates WHERE status = ?)", models.CertificatePending)).
		Column(sq.Expr("(SELECT COUNT(*) FROM appointments WHERE status = ?)", string(domain.StatusScheduled))).
		Column(sq.Expr("(SELECT COUNT(*) FROM appointments WHERE status = ?)", string(domain.StatusCompleted))).
		ToSql()
	if err != nil {
		return admin.Stats{}, fmt.Errorf("%w: Stats: %v", ErrBuildQuery, err)
	}

	var s admin.Stats
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.Clients,
		&s.Mechanics,
		&s.ValidatedMechanics,
		&s.PendingCertificates,
		&s.ScheduledVisits,
		&s.CompletedVisits,
	); err != nil {
		return admin.Stats{}, fmt.Errorf("%w: Stats: %v", ErrScanRow, err)
	}
	return s, nil
}

func (r *AdminReports) ListUsers(ctx context.Context, f admin.UserFilter) ([]admin.UserRow, error) {
	q := psql.
		Select("id", "name", "email", "role", "validated", "active", "created_at").
		From("users").
		OrderBy("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset)

	if f.Role != "" {
		q = q.Where(sq.Eq{"role": f.Role})
	}
	if f.Validated != nil {
		q = q.Where(sq.Eq{"validated": *f.Validated})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUsers: %v", ErrBuildQuery, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUsers: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := []admin.UserRow{}
	for rows.Next() {
		var u admin.UserRow
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Validated, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListUsers: %v", ErrScanRow, err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUsers: %v", ErrExecQuery, err)
	}
	return out, nil
}

var _ admin.Reports = (*AdminReports)(nil)
