// Package identity is the boundary to the federated identity provider that
// owns the user's login. The client never verifies tokens: it only reads
// the subject claim to key the member exchange.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/fortunekeeper/internal/common"
)

// ErrLoginRedirect means the provider took over with an interactive login;
// the current flow must stop and will resume on the next start.
var ErrLoginRedirect = errors.New("redirected to identity provider login")

type Provider interface {
	IsLoggedIn(ctx context.Context) bool
	// IDToken returns the raw ID token, or "" when none is available.
	IDToken(ctx context.Context) string
	// Login starts the provider's interactive login.
	Login(ctx context.Context) error
}

// Subject extracts the "sub" claim from an ID token without verifying its
// signature. Missing, malformed or subject-less tokens yield
// common.ErrInvalidToken.
func Subject(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", common.ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if sub == "" {
		return "", fmt.Errorf("%w: no subject", common.ErrInvalidToken)
	}
	return sub, nil
}
