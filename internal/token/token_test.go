package token

import (
	"strconv"
	"testing"
	"time"

	"inkwell/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret-key-for-token-tests"}
}

func TestService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewService(testConfig())

	tok, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestService_Claims(t *testing.T) {
	svc := NewService(testConfig())
	issuedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	tok, err := svc.Issue(7)
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (any, error) {
		return []byte(testConfig().JWTSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return issuedAt }))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, strconv.Itoa(7), claims["sub"])
	assert.Equal(t, "inkwell-api", claims["iss"])
	assert.Equal(t, "inkwell-client", claims["aud"])

	// Expiry is exactly one hour after issuance
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour).Unix(), exp.Unix())

	assert.NotEmpty(t, claims["jti"])
}

func TestService_VerifyExpired(t *testing.T) {
	svc := NewService(testConfig())
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	tok, err := svc.Issue(1)
	require.NoError(t, err)

	// Still valid just before expiry
	svc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = svc.Verify(tok)
	assert.NoError(t, err)

	// Rejected once the absolute expiry has passed
	svc.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_VerifyRejectsTampered(t *testing.T) {
	svc := NewService(testConfig())

	tok, err := svc.Issue(1)
	require.NoError(t, err)

	_, err = svc.Verify(tok + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_VerifyRejectsWrongSecret(t *testing.T) {
	svc := NewService(testConfig())
	other := NewService(&config.Config{JWTSecret: "a-completely-different-secret"})

	tok, err := other.Issue(1)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_VerifyRejectsWrongIssuer(t *testing.T) {
	svc := NewService(testConfig())

	claims := jwt.MapClaims{
		"sub": "1",
		"iss": "someone-else",
		"aud": "inkwell-client",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testConfig().JWTSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_VerifyRejectsMalformed(t *testing.T) {
	svc := NewService(testConfig())

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestService_VerifyRejectsBadSubject(t *testing.T) {
	svc := NewService(testConfig())

	claims := jwt.MapClaims{
		"sub": "not-a-number",
		"iss": "inkwell-api",
		"aud": "inkwell-client",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testConfig().JWTSecret))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
