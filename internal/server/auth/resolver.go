package auth

import (
	"context"
	"net/http"

	"github.com/mlukins/accountd/internal/common"
	"github.com/mlukins/accountd/internal/server/models"
)

// Resolver tries an ordered list of schemes and returns the first success.
//
// Order matters: when every scheme fails, only the LAST scheme's error is
// surfaced. With bearer before basic, a request carrying a bad bearer token
// reports the basic-auth failure.
type Resolver struct {
	schemes []Scheme
}

func NewResolver(schemes ...Scheme) *Resolver {
	return &Resolver{schemes: schemes}
}

// Authenticate resolves the request to a user, or returns the last scheme's
// failure. With no schemes configured it fails closed.
func (r *Resolver) Authenticate(ctx context.Context, req *http.Request) (*models.User, error) {
	err := error(common.ErrInvalidCredentials)

	for _, scheme := range r.schemes {
		var user *models.User
		user, err = scheme.Authenticate(ctx, req)
		if err == nil {
			return user, nil
		}
	}

	return nil, err
}
