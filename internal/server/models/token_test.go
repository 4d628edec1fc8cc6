package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToken_IsExpired(t *testing.T) {
	past := time.Now().Add(-time.Second)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		expires *time.Time
		want    bool
	}{
		{"no expiration", nil, false},
		{"expires in the future", &future, false},
		{"expired one second ago", &past, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := &Token{Secret: "secret-token:x", ExpiresAt: tt.expires}
			assert.Equal(t, tt.want, tok.IsExpired())
		})
	}
}
