package repository

import (
	"context"
	"database/sql"

	"github.com/propdesk/property-api/internal/model"
)

// LeaseRepo persists lease rows linking tenants to units.
type LeaseRepo struct{ DB *sql.DB }

func NewLeaseRepo(db *sql.DB) *LeaseRepo { return &LeaseRepo{DB: db} }

// CreateLease inserts a lease and returns its ID.
func (r *LeaseRepo) CreateLease(ctx context.Context, l *model.Lease) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO leases (unit_id, tenant_id, start_date, end_date, monthly_rent, security_deposit, status, terms, is_renewable, is_active) VALUES (?,?,?,?,?,?,?,?,?,?)",
		l.UnitID, l.TenantID, l.StartDate, l.EndDate, l.MonthlyRent, l.SecurityDeposit,
		l.Status, l.Terms, l.IsRenewable, l.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// ListByUnit returns all leases recorded against a unit, newest first.
func (r *LeaseRepo) ListByUnit(ctx context.Context, unitID uint64) ([]model.Lease, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,unit_id,tenant_id,start_date,end_date,monthly_rent,security_deposit,status,COALESCE(terms,''),is_renewable,is_active,created_at,updated_at FROM leases WHERE unit_id=? ORDER BY created_at DESC",
		unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Lease
	for rows.Next() {
		var l model.Lease
		if err := rows.Scan(&l.ID, &l.UnitID, &l.TenantID, &l.StartDate, &l.EndDate,
			&l.MonthlyRent, &l.SecurityDeposit, &l.Status, &l.Terms, &l.IsRenewable,
			&l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
