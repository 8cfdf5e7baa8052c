package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt"

	"studyvault/internal/config"
	"studyvault/internal/model"
)

// ErrUnauthorized is returned for any missing, malformed, expired, or
// otherwise invalid credential. Callers must not learn which case it was.
var ErrUnauthorized = errors.New("unauthorized")

// Verifier validates an opaque bearer credential and yields the verified
// principal. It must be consulted before every mutating operation; client-side
// "logged in" state is never trusted.
type Verifier interface {
	Verify(ctx context.Context, token string) (*model.Principal, error)
}

// JWTVerifier checks HMAC-signed tokens issued by the external identity
// service. The check is pure: no state is read or written.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier constructs a Verifier from the auth configuration.
func NewJWTVerifier(cfg config.AuthConfig) (*JWTVerifier, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth jwt secret is required")
	}
	return &JWTVerifier{secret: []byte(cfg.JWTSecret), issuer: cfg.Issuer}, nil
}

var _ Verifier = (*JWTVerifier)(nil)

// Verify parses and validates the token. Expiry and not-before are checked by
// the jwt library; signature method is pinned to HMAC.
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*model.Principal, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: no token", ErrUnauthorized)
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return nil, fmt.Errorf("%w: wrong issuer", ErrUnauthorized)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrUnauthorized)
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return &model.Principal{ID: sub, Email: email, DisplayName: name}, nil
}
