// Package auth verifies the access tokens issued by the hosted auth
// provider and mints development tokens in the same shape.
package auth

import (
	"errors"
	"fmt"
	"time"

	"horseadmin/domain/shared"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
)

// UserMetadata is the provider's free-form profile block.
type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Claims of a provider access token.
type Claims struct {
	Email        string       `json:"email,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier issuer may be empty, in which case iss is not checked.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses raw and returns the principal it names.
func (v *Verifier) Verify(raw string) (*shared.Principal, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &shared.Principal{
		ID:        claims.Subject,
		Email:     claims.Email,
		Name:      claims.UserMetadata.FullName,
		AvatarURL: claims.UserMetadata.AvatarURL,
		Metadata: map[string]any{
			"full_name":  claims.UserMetadata.FullName,
			"avatar_url": claims.UserMetadata.AvatarURL,
		},
	}, nil
}

// Mint signs a token for p valid for ttl.
func (v *Verifier) Mint(p shared.Principal, ttl time.Duration) (string, error) {
	if p.ID == "" {
		return "", errors.New("principal id is required")
	}
	now := time.Now()
	claims := Claims{
		Email:        p.Email,
		UserMetadata: UserMetadata{FullName: p.Name, AvatarURL: p.AvatarURL},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
