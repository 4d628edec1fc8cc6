// Package models holds the persisted record types shared by repositories and
// services.
package models

import "time"

// User is an account record. Username and Email are unique
// case-insensitively; the store enforces this with unique indexes on the
// lower-cased values. Username mirrors Email because the system uses the
// email address as the login name.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Locale       string
	IsStaff      bool
	CreatedAt    time.Time
}
