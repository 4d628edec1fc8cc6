package tokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mlukins/accountd/internal/common"
	"github.com/mlukins/accountd/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var tokenRowColumns = []string{"id", "user_id", "secret", "expires_at", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+tokens\s*\(id,\s*user_id,\s*secret,\s*expires_at\)`

	mock.ExpectQuery(q).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	tok := &models.Token{UserID: "u-1", Secret: "secret-token:abc"}
	got, err := repo.Create(context.Background(), tok)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestGetBySecret_ExactMatch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.+\s+FROM\s+tokens\s+WHERE\s+secret\s*=\s*\$1$`

	rows := sqlmock.NewRows(tokenRowColumns).
		AddRow("t-1", "u-1", "secret-token:abc", nil, time.Now())
	mock.ExpectQuery(q).WithArgs("secret-token:abc").WillReturnRows(rows)

	got, err := repo.GetBySecret(context.Background(), "secret-token:abc")
	if err != nil {
		t.Fatalf("GetBySecret error: %v", err)
	}
	if got.UserID != "u-1" || got.ExpiresAt != nil {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestGetBySecret_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.+\s+FROM\s+tokens\s+WHERE\s+secret`).
		WithArgs("secret-token:nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySecret(context.Background(), "secret-token:nope")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByUserID_OldestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.+\s+FROM\s+tokens\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id\s+LIMIT\s+1$`

	exp := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows(tokenRowColumns).
		AddRow("t-1", "u-1", "secret-token:abc", exp, time.Now())
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.GetByUserID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected expiration: %+v", got.ExpiresAt)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+tokens\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+tokens`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
