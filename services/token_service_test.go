package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, lifetime time.Duration) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret", lifetime)
	require.NoError(t, err)
	return ts
}

func TestTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := newTestTokenService(t, 2*time.Hour)

	token, expiresAt, err := ts.Issue("account-123", "ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.AccountID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestTokenService_Lifetime(t *testing.T) {
	ts := newTestTokenService(t, 2*time.Hour)

	issuedAt := time.Now()
	ts.now = func() time.Time { return issuedAt }

	token, _, err := ts.Issue("account-123", "ana@example.com")
	require.NoError(t, err)

	// Accepted while the token is still live.
	ts.now = func() time.Time { return issuedAt.Add(1 * time.Hour) }
	_, err = ts.Verify(token)
	assert.NoError(t, err)

	// Rejected once the lifetime has elapsed.
	ts.now = func() time.Time { return issuedAt.Add(3 * time.Hour) }
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	token, _, err := ts.Issue("account-123", "ana@example.com")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ts.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	other, err := NewTokenService("other-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := other.Issue("account-123", "ana@example.com")
	require.NoError(t, err)

	ts := newTestTokenService(t, time.Hour)
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsWrongAlgorithm(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	claims := &Claims{
		AccountID: "account-123",
		Email:     "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ts.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
