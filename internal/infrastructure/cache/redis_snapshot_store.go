package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain"
)

var _ analytics.SnapshotStore = (*RedisSnapshotStore)(nil)

// RedisSnapshotStore guarda los snapshots como JSON con TTL; varias réplicas comparten el último resultado.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore construye el store. ttl <= 0 guarda sin expiración.
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

// Get devuelve domain.ErrSnapshotNotFound si la clave no existe o expiró.
func (s *RedisSnapshotStore) Get(ctx context.Context, key string) (*dto.DashboardMetricsResponse, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache.Get %s: %w", key, err)
	}
	var snap dto.DashboardMetricsResponse
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("cache.Get %s: decode: %w", key, err)
	}
	return &snap, nil
}

// Save reemplaza el snapshot de la clave.
func (s *RedisSnapshotStore) Save(ctx context.Context, key string, snap *dto.DashboardMetricsResponse) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache.Save %s: encode: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache.Save %s: %w", key, err)
	}
	return nil
}
