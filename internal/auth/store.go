package auth

import (
	"context"
	"errors"

	"github.com/propdesk/property-api/internal/model"
)

// Errors a UserStore implementation must return so the session manager can
// map them. Anything else is treated as an internal failure.
var (
	// ErrEmailTaken is returned by Create when the email is already present.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUserNotFound is returned by the lookup methods on a miss.
	ErrUserNotFound = errors.New("user not found")
	// ErrStaleToken is returned by RotateRefreshToken and ClearRefreshToken
	// when the stored token no longer matches the expected value, i.e. a
	// concurrent rotation or logout got there first.
	ErrStaleToken = errors.New("stale refresh token")
)

// UserStore is the persistence the session manager depends on. It is
// satisfied by repository.UserRepo in production and by fakes in tests.
type UserStore interface {
	// Create inserts the user and fills in its ID.
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByRefreshToken(ctx context.Context, token string) (model.User, error)
	// SetRefreshToken unconditionally overwrites the user's stored refresh
	// token, invalidating whatever session existed before.
	SetRefreshToken(ctx context.Context, userID uint64, token string) error
	// RotateRefreshToken swaps old for new only if old is still the stored
	// value. When two refresh calls race, exactly one rotation wins; the
	// loser gets ErrStaleToken.
	RotateRefreshToken(ctx context.Context, userID uint64, old, next string) error
	// ClearRefreshToken empties the stored token if it still equals token.
	ClearRefreshToken(ctx context.Context, userID uint64, token string) error
}
