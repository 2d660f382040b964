package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stockroom/internal/errors"
)

const testSecret = "test-secret"

func signClaims(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenIssuer_Verify(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	now := time.Now()

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "expired token",
			token: signClaims(t, testSecret, jwt.RegisteredClaims{
				Subject:   "user-123",
				IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			}),
		},
		{
			name: "wrong secret",
			token: signClaims(t, "other-secret", jwt.RegisteredClaims{
				Subject:   "user-123",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}),
		},
		{
			name: "missing subject",
			token: signClaims(t, testSecret, jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}),
		},
		{
			name:  "malformed payload",
			token: "not.a.jwt",
		},
		{
			name:  "empty string",
			token: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}

func TestTokenIssuer_RejectsUnsignedToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(unsigned)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenIssuer_ValidBeforeExpiry(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	// Expiry sits almost a full hour out; a token verified right after
	// issuance is well inside its lifetime.
	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.RegisteredClaims{})
	require.NoError(t, err)
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, 5*time.Second)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}
