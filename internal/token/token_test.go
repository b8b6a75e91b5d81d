package token_test

import (
	"testing"
	"time"

	"github.com/dom/studio-api/internal/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	secret = []byte("test-jwt-secret-key-for-testing-only")
	issued = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
)

func TestVerify(t *testing.T) {
	adminID := uuid.New()
	signed, expiresAt, err := token.Sign(adminID, secret, issued, token.DefaultTTL)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour), expiresAt)

	foreignAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &token.Claims{
		AdminID: adminID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		},
	}).SignedString(secret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &token.Claims{
		AdminID: adminID.String(),
	}).SignedString(secret)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &token.Claims{
		AdminID: "not-a-uuid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		},
	}).SignedString(secret)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  []byte
		now     time.Time
		wantErr error
	}{
		{
			name:   "valid right after issue",
			token:  signed,
			secret: secret,
			now:    issued,
		},
		{
			name:   "valid one minute before expiry",
			token:  signed,
			secret: secret,
			now:    expiresAt.Add(-time.Minute),
		},
		{
			name:    "expired",
			token:   signed,
			secret:  secret,
			now:     expiresAt.Add(time.Minute),
			wantErr: token.ErrExpired,
		},
		{
			name:    "rotated secret",
			token:   signed,
			secret:  []byte("a-brand-new-secret-after-rotation"),
			now:     issued,
			wantErr: token.ErrInvalidSignature,
		},
		{
			name:    "unexpected signing method",
			token:   foreignAlg,
			secret:  secret,
			now:     issued,
			wantErr: token.ErrInvalidSignature,
		},
		{
			name:    "garbage",
			token:   "notajwt",
			secret:  secret,
			now:     issued,
			wantErr: token.ErrMalformed,
		},
		{
			name:    "empty",
			token:   "",
			secret:  secret,
			now:     issued,
			wantErr: token.ErrMalformed,
		},
		{
			name:    "missing expiry",
			token:   noExpiry,
			secret:  secret,
			now:     issued,
			wantErr: token.ErrMalformed,
		},
		{
			name:    "admin id is not a uuid",
			token:   badSubject,
			secret:  secret,
			now:     issued,
			wantErr: token.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := token.Verify(tt.token, tt.secret, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, uuid.Nil, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, adminID, got)
		})
	}
}

func TestService_IssueAndVerify(t *testing.T) {
	now := issued
	svc, err := token.NewService(string(secret), 0)
	require.NoError(t, err)
	svc = svc.WithClock(func() time.Time { return now })

	adminID := uuid.New()
	signed, expiresAt, err := svc.Issue(adminID)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(token.DefaultTTL), expiresAt)

	got, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, adminID, got)

	now = issued.Add(token.DefaultTTL + time.Second)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, token.ErrExpired)
}

func TestNewService_EmptySecret(t *testing.T) {
	_, err := token.NewService("", time.Hour)
	assert.Error(t, err)
}
