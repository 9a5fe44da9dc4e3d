package auth

import (
	"time"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// Claims identify the bearer of a token.
type Claims struct {
	UserID int64
	Role   model.Role
}

type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	// Now overrides the clock used for expiry.
	Now func() time.Time
}
