package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlukins/accountd/internal/common"
	"github.com/mlukins/accountd/internal/dbx"
	"github.com/mlukins/accountd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.Token) (*models.Token, error) {

	if token.ID == "" {
		token.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO tokens (id, user_id, secret, expires_at)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		token.ID, token.UserID, token.Secret, token.ExpiresAt).Scan(&token.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) scanToken(row *sql.Row) (*models.Token, error) {
	token := &models.Token{}
	err := row.Scan(&token.ID, &token.UserID, &token.Secret, &token.ExpiresAt, &token.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) GetBySecret(ctx context.Context, secret string) (*models.Token, error) {
	// Exact match; secrets are never compared case-insensitively.
	query := `SELECT id, user_id, secret, expires_at, created_at FROM tokens WHERE secret = $1`
	return r.scanToken(r.db.QueryRowContext(ctx, query, secret))
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Token, error) {
	// The store does not enforce one token per user; if several exist,
	// the oldest one wins, matching the access pattern.
	query :=
		`SELECT id, user_id, secret, expires_at, created_at FROM tokens
		 WHERE user_id = $1
		 ORDER BY created_at, id
		 LIMIT 1
		 `
	return r.scanToken(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
