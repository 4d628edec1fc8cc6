package db

import (
	"context"
	"database/sql"

	"github.com/mlukins/accountd/internal/dbx"
	"github.com/mlukins/accountd/internal/server/tokens"
	"github.com/mlukins/accountd/internal/server/users"
)

// RepositoryManager hands out repositories bound to a particular database
// handle, so services can bind the same repository either to the pool or to
// a transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
}
