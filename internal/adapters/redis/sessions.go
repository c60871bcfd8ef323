package redisad

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"redproduct_console/internal/adapters/observability"
)

// Sessions keeps backend tokens server-side, keyed by an opaque session id.
// The browser only ever sees the id.
type Sessions struct {
	c           *redis.Client
	ttl         time.Duration
	rememberTTL time.Duration
}

func New(addr, pass string, db int, ttl, rememberTTL time.Duration) *Sessions {
	return &Sessions{
		c:           redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl:         ttl,
		rememberTTL: rememberTTL,
	}
}

func key(sid string) string { return "session:" + sid }

func (s *Sessions) Create(ctx context.Context, token string, remember bool) (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	sid := hex.EncodeToString(b[:])
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}
	if err := s.c.Set(ctx, key(sid), token, ttl).Err(); err != nil {
		return "", err
	}
	observability.ObserveSession("create")
	return sid, nil
}

func (s *Sessions) Token(ctx context.Context, sid string) (string, bool, error) {
	v, err := s.c.Get(ctx, key(sid)).Result()
	if err == redis.Nil {
		observability.ObserveSession("miss")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	observability.ObserveSession("hit")
	return v, true, nil
}

func (s *Sessions) Destroy(ctx context.Context, sid string) error {
	observability.ObserveSession("destroy")
	return s.c.Del(ctx, key(sid)).Err()
}
