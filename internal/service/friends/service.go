package friends

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

const friendKeyPrefix = "friends:"

// Repository is the durable source of friend relations.
type Repository interface {
	Friends(ctx context.Context, identity string) ([]string, error)
}

// CacheRepository is an optional read-through cache in front of the
// repository. A nil cache is valid.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Service resolves friend relations for friends-only room access checks.
// Cache failures are logged and fall through to the repository; a
// repository failure is the caller's hard error.
type Service struct {
	repo  Repository
	cache CacheRepository // optional, can be nil
	ttl   time.Duration
}

func NewService(repo Repository, cache CacheRepository, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl}
}

func (s *Service) Friends(ctx context.Context, identity string) ([]string, error) {
	key := friendKeyPrefix + identity

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var friends []string
			if err := json.Unmarshal([]byte(cached), &friends); err == nil {
				return friends, nil
			}
			log.Printf("[FRIENDS] Corrupt cache entry for %s, refetching", identity)
		}
	}

	friends, err := s.repo.Friends(ctx, identity)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(friends); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
				log.Printf("[FRIENDS] Error caching relations for %s: %v", identity, err)
			}
		}
	}

	return friends, nil
}

// Invalidate drops the cached relations for an identity, e.g. after the
// platform reports a friendship change.
func (s *Service) Invalidate(ctx context.Context, identity string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, friendKeyPrefix+identity); err != nil {
		log.Printf("[FRIENDS] Error invalidating cache for %s: %v", identity, err)
	}
}
