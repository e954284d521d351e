package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Callers that need to tell an expired token
// apart from a forged or malformed one can test with errors.Is; at the HTTP
// boundary both collapse to 401.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessClaims is the identity carried inside an access token.
type AccessClaims struct {
	UserID uint64
	Email  string
	Role   string
}

// NewAccessToken signs an HS256 JWT identifying a user. Access tokens are
// short-lived and never persisted; the server cannot revoke one before its
// exp passes.
func NewAccessToken(secret string, userID uint64, email, role string, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   now.Add(time.Duration(ttlMin) * time.Minute).Unix(),
		"iat":   now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// NewRefreshToken signs an HS256 JWT carrying the user id. Refresh tokens
// are signed with a secret distinct from the access-token secret, so
// compromise of one cannot forge the other. A random jti makes every issued
// token unique; rotation relies on old and new tokens never being equal.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (string, error) {
	jti, err := randomHex(16)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"exp": now.Add(time.Duration(ttlDays) * 24 * time.Hour).Unix(),
		"iat": now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// randomHex returns a hex string built from n bytes of secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ParseAccessToken validates signature and expiry of an access token and
// extracts its claims.
func ParseAccessToken(secret, raw string) (AccessClaims, error) {
	claims, err := parseHS256(secret, raw)
	if err != nil {
		return AccessClaims{}, err
	}
	uid, ok := subjectID(claims)
	if !ok {
		return AccessClaims{}, ErrTokenInvalid
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return AccessClaims{UserID: uid, Email: email, Role: role}, nil
}

// ParseRefreshToken validates signature and expiry of a refresh token and
// returns the embedded user id.
func ParseRefreshToken(secret, raw string) (uint64, error) {
	claims, err := parseHS256(secret, raw)
	if err != nil {
		return 0, err
	}
	uid, ok := subjectID(claims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	return uid, nil
}

func parseHS256(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// subjectID reads the sub claim. JWT numbers decode as float64; some
// issuers encode the id as a string, so both are accepted.
func subjectID(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
