// Copyright (c) 2026 CityInfo API. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [auth.TokenProvider] interface.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenTTL is the fixed validity window of an issued bearer token.
	AccessTokenTTL = 24 * time.Hour

	// NotProvided is the sentinel claim value for absent name fields.
	NotProvided = "Not provided"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why name claims?
//
// By embedding the subject id and the user's given/family names directly
// inside the JWT, downstream verifiers can reconstruct the active user
// context WITHOUT querying the database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// GivenName is the user's first name, or [NotProvided] when absent.
	GivenName string `json:"given_name"`
	// FamilyName is the user's last name, or [NotProvided] when absent.
	FamilyName string `json:"family_name"`
}

// UserID returns the numeric subject id carried in the claims.
func (c *AuthClaims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("sec: non-numeric token subject %q", c.Subject)
	}
	return id, nil
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// # Configuration Contract
//
// The secret, issuer, and audience MUST match byte-for-byte between the
// issuing side (login/signup) and any verifying side (bearer middleware).
// All three come from startup configuration and are never empty in a
// running system.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenService creates a new TokenService.
//
// It fails fast on empty configuration: a blank secret, issuer, or audience
// is a deployment mistake, not a condition to discover per request.
func NewTokenService(secret, issuer, audience string) (*TokenService, error) {
	if secret == "" || issuer == "" || audience == "" {
		return nil, errors.New("sec: token secret, issuer, and audience must all be configured")
	}

	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}, nil
}

// IssueToken creates a signed bearer token for the given user identity.
//
// # Claims
//   - sub: the user id in string form.
//   - given_name / family_name: the user's names, falling back to [NotProvided].
//   - nbf / iat: issuance instant (UTC).
//   - exp: issuance instant + [AccessTokenTTL].
func (service *TokenService) IssueToken(userID int, firstName, lastName string) (string, error) {
	if firstName == "" {
		firstName = NotProvided
	}
	if lastName == "" {
		lastName = NotProvided
	}

	currentTime := time.Now().UTC()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			NotBefore: jwt.NewNumericDate(currentTime),
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(AccessTokenTTL)),
		},
		GivenName:  firstName,
		FamilyName: lastName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// It rejects tokens signed with any algorithm other than HMAC, tokens from
// a different issuer or audience, and tokens outside their validity window.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
