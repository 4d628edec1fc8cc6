package models

import "time"

// Token is an opaque bearer credential owned by exactly one user. A nil
// ExpiresAt means the token never expires. Tokens are never updated in
// place; rotation is delete-then-insert.
type Token struct {
	ID        string
	UserID    string
	Secret    string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token has an expiration timestamp strictly
// in the past.
func (t *Token) IsExpired() bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(time.Now())
}
