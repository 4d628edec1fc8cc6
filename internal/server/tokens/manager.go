package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mlukins/accountd/internal/common"
	"github.com/mlukins/accountd/internal/dbx"
	"github.com/mlukins/accountd/internal/server/models"
	"github.com/mlukins/accountd/internal/server/users"
)

// RepositoryFactory binds a token repository to a database handle, so the
// manager can run repository calls either directly or inside a transaction.
type RepositoryFactory func(db dbx.DBTX) Repository

// UserRepositoryFactory does the same for user repositories.
type UserRepositoryFactory func(db dbx.DBTX) users.Repository

// Manager owns the bearer-token lifecycle: issuing, rotating expired tokens,
// and validating presented secrets.
type Manager struct {
	db     *sql.DB
	tokens RepositoryFactory
	users  UserRepositoryFactory
}

func NewManager(db *sql.DB, tokens RepositoryFactory, users UserRepositoryFactory) *Manager {
	return &Manager{db: db, tokens: tokens, users: users}
}

func newToken(userID string) (*models.Token, error) {
	secret, err := common.NewTokenSecret()
	if err != nil {
		return nil, err
	}
	// Freshly issued tokens never expire.
	return &models.Token{UserID: userID, Secret: secret}, nil
}

// GetOrCreate returns the user's live token, creating one if none exists.
// An expired token is rotated: the old row is deleted and a replacement with
// a fresh secret and no expiration is inserted, both inside one transaction.
func (m *Manager) GetOrCreate(ctx context.Context, userID string) (*models.Token, error) {

	existing, err := m.tokens(m.db).GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return m.create(ctx, userID)
		}
		return nil, fmt.Errorf("token lookup error: %w", err)
	}

	if !existing.IsExpired() {
		return existing, nil
	}

	return m.rotate(ctx, existing)
}

func (m *Manager) create(ctx context.Context, userID string) (*models.Token, error) {
	token, err := newToken(userID)
	if err != nil {
		return nil, err
	}

	token, err = m.tokens(m.db).Create(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("token creation error: %w", err)
	}

	return token, nil
}

func (m *Manager) rotate(ctx context.Context, expired *models.Token) (*models.Token, error) {
	fresh, err := newToken(expired.UserID)
	if err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.tokens(tx)
		if err := repo.Delete(ctx, expired.ID); err != nil {
			return err
		}
		fresh, err = repo.Create(ctx, fresh)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("token rotation error: %w", err)
	}

	return fresh, nil
}

// Validate resolves a presented secret to its owning user. A missing secret
// and an expired one both yield ErrInvalidToken, so a caller cannot tell
// which case applied.
func (m *Manager) Validate(ctx context.Context, secret string) (*models.User, error) {

	token, err := m.tokens(m.db).GetBySecret(ctx, secret)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("token lookup error: %w", err)
	}

	if token.IsExpired() {
		return nil, common.ErrInvalidToken
	}

	user, err := m.users(m.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("user lookup error: %w", err)
	}

	return user, nil
}
