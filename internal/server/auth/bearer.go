package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mlukins/accountd/internal/common"
	"github.com/mlukins/accountd/internal/server/models"
)

// TokenValidator resolves a bearer secret to its owning user. Satisfied by
// *tokens.Manager.
type TokenValidator interface {
	Validate(ctx context.Context, secret string) (*models.User, error)
}

// BearerScheme authenticates "Authorization: Bearer <secret>" headers by
// delegating to the token manager.
type BearerScheme struct {
	tokens TokenValidator
}

func NewBearerScheme(tv TokenValidator) *BearerScheme {
	return &BearerScheme{tokens: tv}
}

// secretFromHeader extracts the bearer secret, or "" if the header does not
// carry one.
func secretFromHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (s *BearerScheme) Authenticate(ctx context.Context, r *http.Request) (*models.User, error) {
	secret := secretFromHeader(r)
	if secret == "" {
		return nil, common.ErrInvalidToken
	}
	return s.tokens.Validate(ctx, secret)
}
