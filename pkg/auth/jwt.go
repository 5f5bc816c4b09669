// Package auth mints and parses the bearer token carried between an
// indexer and the Explorer (§4.5).
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// claims carries the indexer's identity as the sole meaningful claim
// (§4.5: "IndexerId as its sole meaningful claim").
type claims struct {
	jwt.RegisteredClaims
}

// Mint signs a long-lived bearer for indexerID using secret. No expiry is
// set by design — the token lives as long as the indexer process does
// (§4.5: "long-lived for the indexer's lifetime").
func Mint(secret []byte, indexerID uuid.UUID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: indexerID.String(),
		},
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("mint jwt: %w", err)
	}
	return signed, nil
}

// IndexerIDFromToken parses and validates token, returning the indexer id
// carried in its subject claim.
func IndexerIDFromToken(secret []byte, token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse jwt: %w", err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("invalid jwt claims")
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("jwt subject is not a valid indexer id: %w", err)
	}
	return id, nil
}
