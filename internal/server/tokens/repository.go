package tokens

import (
	"context"

	"github.com/mlukins/accountd/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.Token) (*models.Token, error)
	// GetBySecret performs an exact, case-sensitive lookup.
	GetBySecret(ctx context.Context, secret string) (*models.Token, error)
	GetByUserID(ctx context.Context, userID string) (*models.Token, error)
	Delete(ctx context.Context, id string) error
}
