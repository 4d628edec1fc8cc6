// Package auth resolves request credentials to an authenticated user. Two
// schemes exist: bearer tokens and HTTP Basic. The Resolver tries schemes in
// a caller-specified order; no session state is established, every request
// re-authenticates from scratch.
package auth

import (
	"context"
	"net/http"

	"github.com/mlukins/accountd/internal/server/models"
)

// Scheme authenticates a single HTTP authentication scheme. Implementations
// return the authenticated user or a sentinel error from the common package.
type Scheme interface {
	Authenticate(ctx context.Context, r *http.Request) (*models.User, error)
}
