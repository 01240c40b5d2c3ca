// Package utils provides helpers for token creation, verification and hashing.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthToken represents a signed HS256 token along with its expiry. The Token
// field contains the serialized JWT returned to the client; Exp stores the
// UTC expiration time.
type AuthToken struct {
	Token string
	Exp   time.Time
}

// Sentinel errors returned by VerifyAuthToken. Handlers treat all three as
// an authentication failure but tests and logs can tell them apart.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
)

// NewAuthToken builds and signs an HS256 JWT for a user. The claims carry the
// user ID as the subject plus issued-at and expiry timestamps. The default
// TTL of 360000 seconds (~100 hours) mirrors the scheme this service has
// always used; it is configurable via TOKEN_TTL_SEC.
func NewAuthToken(secret string, userID uint64, ttlSec int) (AuthToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlSec) * time.Second)
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// VerifyAuthToken checks the signature and expiry of a token and returns the
// user ID embedded at issuance. The identity is taken solely from the
// verified subject claim; callers must not derive it from any other request
// field. Tokens signed with a non-HMAC method are rejected.
func VerifyAuthToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignature
		default:
			return 0, ErrTokenMalformed
		}
	}
	if !tok.Valid {
		return 0, ErrTokenMalformed
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenMalformed
	}
	// Numeric claims decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub < 0 {
		return 0, ErrTokenMalformed
	}
	return uint64(sub), nil
}
