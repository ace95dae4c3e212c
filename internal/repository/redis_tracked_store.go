package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"BasketNa/internal/domain/models"
	"BasketNa/internal/domain/repository"
)

// ErrNotTracked is returned when untracking a product the user never tracked.
var ErrNotTracked = errors.New("product is not tracked")

// RedisTrackedStore keeps tracked items in Redis sets. Set semantics
// give (user, product) uniqueness for free; creation times live in a
// companion hash.
type RedisTrackedStore struct {
	client *redis.Client
}

func NewRedisTrackedStore(client *redis.Client) repository.TrackedStore {
	return &RedisTrackedStore{client: client}
}

func trackedKey(userID string) string   { return "basketna:tracked:" + userID }
func trackedAtKey(userID string) string { return "basketna:tracked_at:" + userID }

func (s *RedisTrackedStore) Track(ctx context.Context, userID, productID string) (models.TrackedItem, error) {
	now := time.Now().UTC()
	added, err := s.client.SAdd(ctx, trackedKey(userID), productID).Result()
	if err != nil {
		return models.TrackedItem{}, fmt.Errorf("track: %w", err)
	}
	if added > 0 {
		if err := s.client.HSet(ctx, trackedAtKey(userID), productID, now.Unix()).Err(); err != nil {
			return models.TrackedItem{}, fmt.Errorf("track timestamp: %w", err)
		}
	} else {
		// already tracked, keep the original creation time
		if ts, err := s.client.HGet(ctx, trackedAtKey(userID), productID).Result(); err == nil {
			if unix, perr := strconv.ParseInt(ts, 10, 64); perr == nil {
				now = time.Unix(unix, 0).UTC()
			}
		}
	}
	return models.TrackedItem{UserID: userID, ProductID: productID, CreatedAt: now}, nil
}

func (s *RedisTrackedStore) Untrack(ctx context.Context, userID, productID string) error {
	removed, err := s.client.SRem(ctx, trackedKey(userID), productID).Result()
	if err != nil {
		return fmt.Errorf("untrack: %w", err)
	}
	if removed == 0 {
		return ErrNotTracked
	}
	return s.client.HDel(ctx, trackedAtKey(userID), productID).Err()
}

func (s *RedisTrackedStore) List(ctx context.Context, userID string) ([]models.TrackedItem, error) {
	ids, err := s.client.SMembers(ctx, trackedKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list tracked: %w", err)
	}
	createdAt, err := s.client.HGetAll(ctx, trackedAtKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list tracked timestamps: %w", err)
	}

	out := make([]models.TrackedItem, 0, len(ids))
	for _, id := range ids {
		item := models.TrackedItem{UserID: userID, ProductID: id}
		if ts, ok := createdAt[id]; ok {
			if unix, perr := strconv.ParseInt(ts, 10, 64); perr == nil {
				item.CreatedAt = time.Unix(unix, 0).UTC()
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// RedisSessionStore issues anonymous session ids with a TTL.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) repository.SessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(id string) string { return "basketna:session:" + id }

func (s *RedisSessionStore) Create(ctx context.Context, ttl time.Duration) (models.Session, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now().UTC()
	sess := models.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), now.Unix(), ttl).Err(); err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("session exists: %w", err)
	}
	return n > 0, nil
}
