package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mlukins/accountd/internal/common"
	"github.com/mlukins/accountd/internal/server/models"
	"github.com/mlukins/accountd/internal/server/users"
)

// BasicScheme authenticates HTTP Basic credentials against the user store.
// Username lookup is case-insensitive; the password is checked against the
// stored bcrypt hash.
type BasicScheme struct {
	users users.Repository
}

func NewBasicScheme(repo users.Repository) *BasicScheme {
	return &BasicScheme{users: repo}
}

func (s *BasicScheme) Authenticate(ctx context.Context, r *http.Request) (*models.User, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user lookup error: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}
