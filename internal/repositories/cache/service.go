// Package cache wraps redis with JSON values and the key scheme of
// utils/cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartdash/internal/metrics"
	"smartdash/internal/models"
	keys "smartdash/internal/utils/cache"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get decodes the value at key into dest. found is false on a miss.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	entity, _, _, _ := keys.ParseKey(key)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheLookups.WithLabelValues(string(entity), "miss").Inc()
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	metrics.CacheLookups.WithLabelValues(string(entity), "hit").Inc()
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// DeletePattern removes every key matching pattern using SCAN.
func (s *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return s.Delete(ctx, batch...)
}

// User caching, used by the auth middleware on every request.
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, keys.GenerateKey(keys.EntityUser, keys.KeyID, user.ID), cachedUser{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		IsActive:     user.IsActive,
		TokenVersion: user.TokenVersion,
	})
}

func (s *CacheService) GetUser(ctx context.Context, id string) (*models.User, bool, error) {
	var cached cachedUser
	found, err := s.Get(ctx, keys.GenerateKey(keys.EntityUser, keys.KeyID, id), &cached)
	if err != nil || !found {
		return nil, false, err
	}
	u := cached.toModel()
	return &u, true, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, id string) error {
	return s.Delete(ctx, keys.GenerateKey(keys.EntityUser, keys.KeyID, id))
}

// Dashboard statistics
func (s *CacheService) GetDashboard(ctx context.Context) (*models.DashboardStats, bool, error) {
	var stats models.DashboardStats
	found, err := s.Get(ctx, keys.GenerateKey(keys.EntityDashboard, keys.KeyStats, "all"), &stats)
	if err != nil || !found {
		return nil, false, err
	}
	return &stats, true, nil
}

func (s *CacheService) SetDashboard(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error {
	return s.SetWithTTL(ctx, keys.GenerateKey(keys.EntityDashboard, keys.KeyStats, "all"), stats, ttl)
}

func (s *CacheService) InvalidateDashboard(ctx context.Context) error {
	return s.DeletePattern(ctx, keys.EntityPattern(keys.EntityDashboard))
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) GetStats() *redis.PoolStats {
	return s.client.PoolStats()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

// cachedUser keeps the fields models.User hides from JSON, since the auth
// middleware needs the token version and role.
type cachedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
	TokenVersion int    `json:"token_version"`
}

func (c cachedUser) toModel() models.User {
	return models.User{
		ID:           c.ID,
		Email:        c.Email,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Role:         c.Role,
		IsActive:     c.IsActive,
		TokenVersion: c.TokenVersion,
	}
}
