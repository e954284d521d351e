package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/propdesk/property-api/internal/model"
)

// PropertyRepo persists properties and their units. Pure storage: the
// service attaches no business rules to either table.
type PropertyRepo struct{ DB *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{DB: db} }

// CreateProperty inserts a property and returns its ID.
func (r *PropertyRepo) CreateProperty(ctx context.Context, p *model.Property) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO properties (owner_id, title, type, price, address, city, state, zip_code, description, total_area, is_active) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		p.OwnerID, p.Title, p.Type, p.Price, p.Address, p.City, p.State, p.ZipCode,
		p.Description, p.TotalArea, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

const propertyColumns = "id,owner_id,title,type,price,address,city,state,zip_code,COALESCE(description,''),COALESCE(total_area,0),is_active,created_at,updated_at"

// GetProperty fetches a property by id.
func (r *PropertyRepo) GetProperty(ctx context.Context, id uint64) (model.Property, error) {
	var p model.Property
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.OwnerID, &p.Title, &p.Type, &p.Price, &p.Address, &p.City,
			&p.State, &p.ZipCode, &p.Description, &p.TotalArea, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Property{}, ErrNotFound
	}
	return p, err
}

// ListProperties returns all active properties, newest first.
func (r *PropertyRepo) ListProperties(ctx context.Context) ([]model.Property, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE is_active=1 ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		var p model.Property
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Type, &p.Price, &p.Address,
			&p.City, &p.State, &p.ZipCode, &p.Description, &p.TotalArea, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateUnit inserts a unit under a property and returns its ID.
func (r *PropertyRepo) CreateUnit(ctx context.Context, u *model.Unit) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO units (property_id, unit_number, area, rent, bedrooms, bathrooms, status, description, is_active) VALUES (?,?,?,?,?,?,?,?,?)",
		u.PropertyID, u.UnitNumber, u.Area, u.Rent, u.Bedrooms, u.Bathrooms,
		u.Status, u.Description, u.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// ListUnits returns all units belonging to a property.
func (r *PropertyRepo) ListUnits(ctx context.Context, propertyID uint64) ([]model.Unit, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,property_id,unit_number,area,rent,bedrooms,bathrooms,status,COALESCE(description,''),is_active,created_at,updated_at FROM units WHERE property_id=? ORDER BY unit_number",
		propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Unit
	for rows.Next() {
		var u model.Unit
		if err := rows.Scan(&u.ID, &u.PropertyID, &u.UnitNumber, &u.Area, &u.Rent,
			&u.Bedrooms, &u.Bathrooms, &u.Status, &u.Description, &u.IsActive,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetUnit fetches a unit by id.
func (r *PropertyRepo) GetUnit(ctx context.Context, id uint64) (model.Unit, error) {
	var u model.Unit
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,property_id,unit_number,area,rent,bedrooms,bathrooms,status,COALESCE(description,''),is_active,created_at,updated_at FROM units WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.PropertyID, &u.UnitNumber, &u.Area, &u.Rent, &u.Bedrooms,
		&u.Bathrooms, &u.Status, &u.Description, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Unit{}, ErrNotFound
	}
	return u, err
}
