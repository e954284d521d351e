package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/propdesk/property-api/internal/auth"
	"github.com/propdesk/property-api/internal/model"
)

// UserRepo persists users in the `users` table. It satisfies auth.UserStore,
// including the conditional refresh-token updates that give rotation its
// read-then-write atomicity.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,first_name,last_name,COALESCE(phone,''),role,is_active,COALESCE(refresh_token,''),created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.IsActive, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, auth.ErrUserNotFound
	}
	return u, err
}

// Create inserts the user and fills in its ID.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, first_name, last_name, phone, role, is_active) VALUES (?,?,?,?,?,?,?)",
		u.Email, u.PasswordHash, u.FirstName, u.LastName, nullable(u.Phone), u.Role, u.IsActive)
	if err != nil {
		// 1062 = duplicate key; email is the only unique column.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return auth.ErrEmailTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByRefreshToken fetches the user whose stored refresh token equals token.
func (r *UserRepo) GetByRefreshToken(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, auth.ErrUserNotFound
	}
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE refresh_token=? LIMIT 1", token))
}

// SetRefreshToken overwrites the user's stored refresh token.
func (r *UserRepo) SetRefreshToken(ctx context.Context, userID uint64, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=?, updated_at=NOW() WHERE id=?", token, userID)
	return err
}

// RotateRefreshToken swaps old for new only while old is still stored. When
// no row matches, a concurrent rotation or logout won the race.
func (r *UserRepo) RotateRefreshToken(ctx context.Context, userID uint64, old, next string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=?, updated_at=NOW() WHERE id=? AND refresh_token=?",
		next, userID, old)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return auth.ErrStaleToken
	}
	return nil
}

// ClearRefreshToken empties the stored token if it still equals token.
func (r *UserRepo) ClearRefreshToken(ctx context.Context, userID uint64, token string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=NULL, updated_at=NOW() WHERE id=? AND refresh_token=?",
		userID, token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return auth.ErrStaleToken
	}
	return nil
}

// ListFilter narrows and pages the admin users listing.
type ListFilter struct {
	Role     string
	IsActive *bool
	Search   string
	Page     int
	Limit    int
}

// List returns a page of users plus the total count matching the filter.
func (r *UserRepo) List(ctx context.Context, f ListFilter) ([]model.User, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if f.Role != "" {
		where = append(where, "role=?")
		args = append(args, f.Role)
	}
	if f.IsActive != nil {
		where = append(where, "is_active=?")
		args = append(args, *f.IsActive)
	}
	if f.Search != "" {
		where = append(where, "(first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)")
		like := "%" + f.Search + "%"
		args = append(args, like, like, like)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	q := fmt.Sprintf("SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT ? OFFSET ?", userColumns, cond)
	rows, err := r.DB.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Phone, &u.Role, &u.IsActive, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
