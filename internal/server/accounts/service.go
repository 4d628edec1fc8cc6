// Package accounts orchestrates the account use cases: registration,
// profile updates, and the admin user listing.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mlukins/accountd/internal/common"
	"github.com/mlukins/accountd/internal/dbx"
	"github.com/mlukins/accountd/internal/server/config"
	"github.com/mlukins/accountd/internal/server/models"
	sharedb "github.com/mlukins/accountd/internal/server/shared/db"
	"github.com/mlukins/accountd/internal/server/tokens"
)

// Patch carries the optional profile-update fields. A nil or empty field is
// left untouched (partial update semantics).
type Patch struct {
	Email    *string
	FullName *string
	Locale   *string
	Password *string
}

// HasPassword reports whether the patch asks for a password change.
func (p Patch) HasPassword() bool { return present(p.Password) }

func present(s *string) bool { return s != nil && *s != "" }

// Page is one slice of the user listing plus the total count across all
// pages.
type Page struct {
	Items []*models.User
	Count int64
}

type Service struct {
	db         *sql.DB
	rm         sharedb.RepositoryManager
	tokens     *tokens.Manager
	locales    []string
	bcryptCost int
}

func NewService(db *sql.DB, rm sharedb.RepositoryManager, tm *tokens.Manager, cfg *config.Config) *Service {
	return &Service{
		db:         db,
		rm:         rm,
		tokens:     tm,
		locales:    cfg.SupportedLocales,
		bcryptCost: cfg.BcryptCost,
	}
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("password hashing error: %w", err)
	}
	return string(hash), nil
}

// Register creates an account and mints its initial bearer token. The email
// is lowercased and doubles as the username. The duplicate check and the
// insert run in one transaction so concurrent registrations of the same
// email cannot both succeed; the loser observes ErrDuplicateCredential.
// The token is minted after the transaction commits, matching the
// create-then-token ordering of the registration flow.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (*models.Token, *models.User, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	var user *models.User

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.ErrDuplicateCredential
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		user, err = repo.Create(ctx, &models.User{
			Username:     email,
			Email:        email,
			FullName:     fullName,
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	token, err := s.tokens.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return token, user, nil
}

// UpdateProfile applies a partial update to the authenticated user.
//
// A password change is only honored when the request itself carried valid
// Basic credentials (basicVerified); a bearer token alone can never change a
// password. Changing the email also rewrites the username, since the two are
// the same value in this system.
func (s *Service) UpdateProfile(ctx context.Context, user *models.User, patch Patch, basicVerified bool) (*models.User, error) {

	if patch.HasPassword() {
		if !basicVerified {
			return nil, common.ErrAuthenticationRequired
		}
		hash, err := s.hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if present(patch.Email) {
		user.Email = *patch.Email
		user.Username = *patch.Email
	}

	if present(patch.FullName) {
		user.FullName = *patch.FullName
	}

	if present(patch.Locale) {
		if !slices.Contains(s.locales, *patch.Locale) {
			return nil, common.ErrUnsupportedLocale
		}
		user.Locale = *patch.Locale
	}

	if err := s.rm.Users(s.db).Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers returns one page of all users in primary-key order. Reserved to
// staff accounts.
func (s *Service) ListUsers(ctx context.Context, requester *models.User, limit, offset int) (*Page, error) {

	if !requester.IsStaff {
		return nil, common.ErrPermissionDenied
	}

	if offset < 0 {
		offset = 0
	}

	repo := s.rm.Users(s.db)

	items, err := repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Page{Items: items, Count: count}, nil
}
