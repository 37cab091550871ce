package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog/internal/cache"
)

const tokenKeyPrefix = "token:"

// ErrTokenNotFound is returned when an issued-token record is absent,
// meaning the token expired or was never issued by this service.
var ErrTokenNotFound = errors.New("token not found")

// TokenStoreInterface records issued bearer tokens. The access gate treats
// the record as the issuance authority: a structurally valid JWT without a
// record is rejected.
type TokenStoreInterface interface {
	StoreToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error
	GetToken(ctx context.Context, tokenID string) (userID uint, err error)
}

// TokenStore keeps issued-token records in Redis with the token TTL.
// Unlike the read-through cache it does not fail safe: redis errors must
// surface so the gate rejects rather than silently accepting.
type TokenStore struct {
	client *redis.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a token store over the shared redis connection.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{client: cache.Redis()}
}

// StoreToken records an issued token until its TTL elapses.
func (s *TokenStore) StoreToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	key := tokenKeyPrefix + tokenID
	return s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// GetToken resolves an issued token to its user id.
func (s *TokenStore) GetToken(ctx context.Context, tokenID string) (uint, error) {
	key := tokenKeyPrefix + tokenID
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrTokenNotFound
	}
	return uint(userID), nil
}
