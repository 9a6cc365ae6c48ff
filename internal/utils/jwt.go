// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-journal-keeper/models"
)

var (
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
	ErrInvalidToken               = errors.New("invalid token")
	ErrTokenExpired               = errors.New("token is expired")
)

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}

// ParseUserFromToken reads the account identity from a JWT issued by the
// remote auth service. The signature is not verified here: the signing key
// belongs to the remote, which rejects forged tokens on every request.
//
// The user id is taken from the "userId" claim, or "sub" when absent. An
// expired token is rejected with [ErrTokenExpired].
func ParseUserFromToken(tokenString string, now time.Time) (*models.User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if exp != nil && !now.Before(exp.Time) {
		return nil, ErrTokenExpired
	}

	id, _ := claims["userId"].(string)
	if id == "" {
		if id, err = claims.GetSubject(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	}
	if id == "" {
		return nil, fmt.Errorf("%w: no user id claim", ErrInvalidToken)
	}

	email, _ := claims["email"].(string)

	return &models.User{ID: id, Email: email, Token: tokenString}, nil
}
