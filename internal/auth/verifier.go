package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"baseware/internal/cache"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token has been revoked")
)

// Claims are the access token claims issued by the identity provider.
type Claims struct {
	Username string `json:"preferred_username,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks RS256 access tokens issued elsewhere.
type Verifier struct {
	key       *rsa.PublicKey
	blacklist cache.TokenBlacklist
}

func NewVerifier(key *rsa.PublicKey, blacklist cache.TokenBlacklist) *Verifier {
	if blacklist == nil {
		blacklist = cache.NopTokenBlacklist{}
	}
	return &Verifier{key: key, blacklist: blacklist}
}

// LoadPublicKey reads a PEM encoded RSA public key.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(raw)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return key, nil
}

// Verify parses tokenString and returns its claims when the signature is
// valid, the token is current and its id has not been revoked.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return v.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, err := v.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check blacklist: %w", err)
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}
	return claims, nil
}

func (c *Claims) Principal() Principal {
	return Principal{Subject: c.RegisteredClaims.Subject, Name: c.Username}
}
