package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/mechapp/internal/config"
)

var ErrNotFound = errors.New("session: not found")

const (
	sessionPrefix     = "mechapp:session:"
	userSessionPrefix = "mechapp:user_sessions:"
	recoveryPrefix    = "mechapp:recovery:"

	RecoveryTTL = 30 * time.Minute
)

// Data is what the server keeps for a logged in user.
type Data struct {
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Store interface {
	Create(ctx context.Context, data Data) (string, error)
	Get(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
	// DeleteUser ends every session of userID.
	DeleteUser(ctx context.Context, userID uint) error
}

type RecoveryStore interface {
	SaveRecoveryToken(ctx context.Context, email string) (string, error)
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, data Data) (string, error) {
	id := uuid.NewString()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	userKey := userSessionsKey(data.UserID)
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, sessionPrefix+id, payload, s.ttl)
		p.SAdd(ctx, userKey, id)
		p.Expire(ctx, userKey, s.ttl)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	raw, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteUser removes the sessions indexed under userID. Ids whose session
// already expired are dropped with the index.
func (s *RedisStore) DeleteUser(ctx context.Context, userID uint) error {
	userKey := userSessionsKey(userID)

	ids, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionPrefix+id)
	}
	keys = append(keys, userKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func userSessionsKey(userID uint) string {
	return userSessionPrefix + strconv.FormatUint(uint64(userID), 10)
}

// SaveRecoveryToken stores a one-off password reset token for email.
func (s *RedisStore) SaveRecoveryToken(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, recoveryPrefix+token, email, RecoveryTTL).Err(); err != nil {
		return "", fmt.Errorf("save recovery token: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var (
	_ Store         = (*RedisStore)(nil)
	_ RecoveryStore = (*RedisStore)(nil)
)
