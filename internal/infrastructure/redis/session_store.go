package redis

import (
	"context"
	"errors"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

// SessionStore resolves browser session cookies to user ids. Sessions are
// written by the auth service under sess:<token>; this service only reads
// them, it never issues or revokes sessions.
type SessionStore struct {
	rdb *goredis.Client

	prefix string
}

func NewSessionStore(c *Client) *SessionStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &SessionStore{
		rdb:    rdb,
		prefix: "sess:",
	}
}

func (s *SessionStore) GetUserID(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrSessionInvalid()
	}
	if s.rdb == nil {
		return "", domain.ErrSessionInvalid()
	}

	uid, err := s.rdb.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", domain.ErrSessionInvalid()
		}
		return "", domain.ErrDBUnavailable(err)
	}
	if uid == "" {
		return "", domain.ErrSessionInvalid()
	}
	return uid, nil
}
