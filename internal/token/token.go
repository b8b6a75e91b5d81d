// Package token issues and verifies the signed bearer tokens handed to admins.
//
// Tokens are stateless HS256 JWTs carrying the admin id and an expiry. There is
// no revocation list: a token dies when it expires or when the signing secret
// is rotated.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is how long an issued token stays valid
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token has expired")
	ErrMalformed        = errors.New("token is malformed")
)

// Claims is the JWT payload
type Claims struct {
	AdminID string `json:"id"`
	jwt.RegisteredClaims
}

// Sign creates a token for adminID that expires ttl after now
func Sign(adminID uuid.UUID, secret []byte, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := &Claims{
		AdminID: adminID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of tokenString as of now and returns
// the admin id it was issued for. It touches no shared state.
func Verify(tokenString string, secret []byte, now time.Time) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, ErrMalformed
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	adminID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return uuid.Nil, ErrMalformed
	}
	return adminID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		// missing exp, not-yet-valid iat and similar claim problems
		return ErrMalformed
	}
}

// Service binds Sign and Verify to the process-wide secret, ttl and clock
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of s that reads the time from now
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Service) Issue(adminID uuid.UUID) (string, time.Time, error) {
	return Sign(adminID, s.secret, s.now(), s.ttl)
}

func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	return Verify(tokenString, s.secret, s.now())
}
