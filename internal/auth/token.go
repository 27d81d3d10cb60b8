package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scheme issues and verifies the bearer tokens that identify a user. Verify
// accepts the raw Authorization header value; an optional "Bearer " prefix is
// tolerated.
type Scheme interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, bool)
}

// StripBearer removes a case-insensitive "Bearer " prefix, if present.
func StripBearer(header string) string {
	if len(header) >= 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return header
}

// LegacyScheme is the historical `token-<id>` scheme the deployed frontend
// still sends. It carries no signature, expiry or revocation and is kept only
// for client compatibility; SignedScheme is the serious alternative.
type LegacyScheme struct{}

func (LegacyScheme) Issue(userID int64) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

func (LegacyScheme) Verify(token string) (int64, bool) {
	s := strings.TrimSpace(StripBearer(token))
	s = strings.TrimPrefix(s, "token-")
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SignedScheme issues HS256 JWTs with the user id as subject and an expiry.
type SignedScheme struct {
	secret []byte
	ttl    time.Duration
}

func NewSignedScheme(secret string, ttl time.Duration) *SignedScheme {
	return &SignedScheme{secret: []byte(secret), ttl: ttl}
}

func (s *SignedScheme) Issue(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"exp": time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

func (s *SignedScheme) Verify(raw string) (int64, bool) {
	raw = strings.TrimSpace(StripBearer(raw))
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SchemeFor selects a token scheme by name. Anything other than "jwt" falls
// back to the legacy scheme.
func SchemeFor(name, secret string, ttl time.Duration) Scheme {
	if name == "jwt" {
		return NewSignedScheme(secret, ttl)
	}
	return LegacyScheme{}
}
