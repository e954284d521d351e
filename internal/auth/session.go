// Package auth implements the session-token lifecycle: signup, credential
// verification, access/refresh token issuance, refresh rotation and logout
// invalidation. The Manager owns the invariant that at most one valid
// refresh token exists per user at a time.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/propdesk/property-api/internal/model"
)

// Errors surfaced to the HTTP layer. Bad credentials, unknown users,
// inactive accounts and stale tokens all collapse into the same values so
// responses cannot be used to probe which accounts exist.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid refresh token")
)

// Config carries the signing secrets and lifetimes the manager issues
// tokens with. Access and refresh tokens use distinct secrets.
type Config struct {
	AccessSecret   string
	RefreshSecret  string
	AccessTTLMin   int
	RefreshTTLDays int
	BcryptCost     int
}

// Manager composes the password hasher, token issuer/verifier and the user
// store into the signup/login/refresh/logout operations. It holds no state
// of its own; the store is the only shared resource.
type Manager struct {
	cfg   Config
	store UserStore
}

func NewManager(cfg Config, store UserStore) *Manager {
	return &Manager{cfg: cfg, store: store}
}

// SignupInput is the profile a new user registers with. Role defaults to
// tenant when empty or unknown.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
}

// Result is a token pair plus the public part of the user it belongs to.
type Result struct {
	User         model.User
	AccessToken  string
	RefreshToken string
}

// TokenPair is what a refresh call returns: the rotated pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Signup creates a user and starts a session for it. Fails with
// ErrEmailTaken when the email is already registered.
func (m *Manager) Signup(ctx context.Context, in SignupInput) (Result, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if !model.ValidRole(role) {
		role = model.RoleTenant
	}
	hash, err := HashPassword(in.Password, m.cfg.BcryptCost)
	if err != nil {
		return Result{}, err
	}
	u := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         role,
		IsActive:     true,
	}
	if err := m.store.Create(ctx, u); err != nil {
		return Result{}, err
	}
	return m.startSession(ctx, *u)
}

// Login verifies credentials and starts a fresh session. Unknown email,
// wrong password and inactive account are indistinguishable to the caller.
// The new refresh token overwrites the stored one, so a login from a second
// device ends the first device's session.
func (m *Manager) Login(ctx context.Context, email, password string) (Result, error) {
	u, err := m.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, err
	}
	if !u.IsActive || !VerifyPassword(u.PasswordHash, password) {
		return Result{}, ErrInvalidCredentials
	}
	return m.startSession(ctx, u)
}

// Refresh exchanges a valid refresh token for a rotated pair. The presented
// token must verify against the refresh secret AND exactly match the value
// stored on the user row; a token that was already rotated or logged out is
// rejected even though its signature still checks out. Rotation happens on
// every call, so refresh tokens are single-use.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	userID, err := ParseRefreshToken(m.cfg.RefreshSecret, refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}
	u, err := m.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return TokenPair{}, ErrInvalidToken
		}
		return TokenPair{}, err
	}
	if !u.IsActive || u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return TokenPair{}, ErrInvalidToken
	}
	pair, err := m.issuePair(u)
	if err != nil {
		return TokenPair{}, err
	}
	// Conditional swap: if another refresh or a logout rotated the stored
	// token between our read and this write, exactly one caller wins.
	if err := m.store.RotateRefreshToken(ctx, u.ID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, ErrStaleToken) {
			return TokenPair{}, ErrInvalidToken
		}
		return TokenPair{}, err
	}
	return pair, nil
}

// Logout ends the session the token belongs to. It is idempotent: an
// unknown, already-rotated or already-cleared token is not an error, since
// there is no session left to end either way.
func (m *Manager) Logout(ctx context.Context, refreshToken string) error {
	u, err := m.store.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}
	if err := m.store.ClearRefreshToken(ctx, u.ID, refreshToken); err != nil {
		if errors.Is(err, ErrStaleToken) {
			return nil
		}
		return err
	}
	return nil
}

func (m *Manager) startSession(ctx context.Context, u model.User) (Result, error) {
	pair, err := m.issuePair(u)
	if err != nil {
		return Result{}, err
	}
	if err := m.store.SetRefreshToken(ctx, u.ID, pair.RefreshToken); err != nil {
		return Result{}, err
	}
	u.RefreshToken = pair.RefreshToken
	return Result{User: u, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (m *Manager) issuePair(u model.User) (TokenPair, error) {
	access, err := NewAccessToken(m.cfg.AccessSecret, u.ID, u.Email, u.Role, m.cfg.AccessTTLMin)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := NewRefreshToken(m.cfg.RefreshSecret, u.ID, m.cfg.RefreshTTLDays)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
