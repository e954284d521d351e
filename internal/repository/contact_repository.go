package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/propdesk/property-api/internal/model"
)

// ContactRepo persists contact-form submissions.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

// Create inserts a contact submission. The unique index on email rejects
// repeat submissions from the same address.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contacts (name, email, comments) VALUES (?,?,?)",
		c.Name, c.Email, c.Comments)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateEmail
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}
