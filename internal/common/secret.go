package common

import (
	"crypto/rand"
	"fmt"
)

// SecretPrefix labels bearer secrets per RFC 8959 so that leaked values are
// recognizable as credentials by scanners.
// https://www.rfc-editor.org/rfc/rfc8959.txt
const SecretPrefix = "secret-token:"

// SecretLength is the number of random characters following the prefix.
const SecretLength = 50

// urlSafeAlphabet matches the unpadded base64url character set.
const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// MakeRandString generates a random string of the given length drawn from
// the URL-safe alphabet. It returns an error if the random number generator
// fails.
func MakeRandString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = urlSafeAlphabet[int(b[i])%len(urlSafeAlphabet)]
	}
	return string(b), nil
}

// NewTokenSecret generates a fresh bearer secret: the RFC 8959 prefix
// followed by SecretLength random URL-safe characters.
func NewTokenSecret() (string, error) {
	s, err := MakeRandString(SecretLength)
	if err != nil {
		return "", fmt.Errorf("secret generation error: %w", err)
	}
	return SecretPrefix + s, nil
}
