// Copyright (c) 2026 CityInfo API. All rights reserved.

package sec

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()
	service, err := NewTokenService("test-secret-key-for-unit-tests", "cityinfo-test", "cityinfo-audience")
	require.NoError(t, err)
	return service
}

func TestNewTokenService_RejectsEmptyConfig(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		issuer   string
		audience string
	}{
		{"empty secret", "", "iss", "aud"},
		{"empty issuer", "secret", "", "aud"},
		{"empty audience", "secret", "iss", ""},
		{"all empty", "", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTokenService(tc.secret, tc.issuer, tc.audience)
			assert.Error(t, err)
		})
	}
}

func TestIssueAndVerifyToken_RoundTrip(t *testing.T) {
	service := newTestService(t)

	tokenStr, err := service.IssueToken(7, "Ada", "Lovelace")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := service.VerifyToken(tokenStr)
	require.NoError(t, err)

	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "Ada", claims.GivenName)
	assert.Equal(t, "Lovelace", claims.FamilyName)
	assert.Equal(t, "cityinfo-test", claims.Issuer)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestIssueToken_NameFallback(t *testing.T) {
	service := newTestService(t)

	tokenStr, err := service.IssueToken(42, "", "")
	require.NoError(t, err)

	claims, err := service.VerifyToken(tokenStr)
	require.NoError(t, err)

	assert.Equal(t, NotProvided, claims.GivenName)
	assert.Equal(t, NotProvided, claims.FamilyName)
}

func TestIssueToken_Expiry(t *testing.T) {
	service := newTestService(t)

	tokenStr, err := service.IssueToken(1, "First", "Last")
	require.NoError(t, err)

	claims, err := service.VerifyToken(tokenStr)
	require.NoError(t, err)

	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, AccessTokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerifyToken_RejectsForeignSecret(t *testing.T) {
	service := newTestService(t)

	other, err := NewTokenService("completely-different-secret", "cityinfo-test", "cityinfo-audience")
	require.NoError(t, err)

	tokenStr, err := other.IssueToken(1, "A", "B")
	require.NoError(t, err)

	_, err = service.VerifyToken(tokenStr)
	assert.Error(t, err)
}

func TestVerifyToken_RejectsWrongIssuerAndAudience(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name     string
		issuer   string
		audience string
	}{
		{"wrong issuer", "someone-else", "cityinfo-audience"},
		{"wrong audience", "cityinfo-test", "another-app"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			other, err := NewTokenService("test-secret-key-for-unit-tests", tc.issuer, tc.audience)
			require.NoError(t, err)

			tokenStr, err := other.IssueToken(1, "A", "B")
			require.NoError(t, err)

			_, err = service.VerifyToken(tokenStr)
			assert.Error(t, err)
		})
	}
}

func TestVerifyToken_RejectsUnsignedToken(t *testing.T) {
	service := newTestService(t)

	// alg=none token must never pass verification.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    "cityinfo-test",
		Audience:  jwt.ClaimStrings{"cityinfo-audience"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.VerifyToken(tokenStr)
	assert.Error(t, err)
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	service := newTestService(t)

	_, err := service.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthClaims_UserID_NonNumeric(t *testing.T) {
	claims := &AuthClaims{}
	claims.Subject = "abc"

	_, err := claims.UserID()
	assert.Error(t, err)
}
