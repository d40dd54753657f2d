package cache_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/period"
	"github.com/jhoicas/pos-dashboard-api/internal/infrastructure/cache"
)

func sampleSnapshot() *dto.DashboardMetricsResponse {
	now := time.Date(2025, time.October, 16, 15, 0, 0, 0, time.FixedZone("COT", -5*60*60))
	m := metrics.Aggregate(metrics.Input{
		Filter: period.FilterToday,
		Now:    now,
		Sales: []entity.Sale{{
			ID:            "s1",
			Total:         decimal.RequireFromString("100000.50"),
			Status:        entity.SaleStatusCompleted,
			PaymentMethod: entity.PaymentMethodCash,
			Items:         []entity.SaleItem{{ProductID: "p1", ProductName: "Audífonos", Quantity: 1, UnitPrice: decimal.RequireFromString("100000.50")}},
			CreatedAt:     now,
		}},
	})
	return &dto.DashboardMetricsResponse{Metrics: m, RefreshID: "r-1", RefreshedAt: now, FailedSources: []string{"credits"}}
}

func newRedisStore(t *testing.T, ttl time.Duration) (*cache.RedisSnapshotStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisSnapshotStore(client, ttl), mr
}

func TestRedisSnapshotStore_GuardaYLee(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)
	ctx := context.Background()
	snap := sampleSnapshot()

	require.NoError(t, store.Save(ctx, "dashboard:c1:today:2025-10-16", snap))
	got, err := store.Get(ctx, "dashboard:c1:today:2025-10-16")
	require.NoError(t, err)

	if diff := cmp.Diff(snap, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("el snapshot no sobrevive el viaje por Redis (-guardado +leído):\n%s", diff)
	}
}

func TestRedisSnapshotStore_ClaveInexistente(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)

	_, err := store.Get(context.Background(), "dashboard:c1:all:2024")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRedisSnapshotStore_Expira(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "k", sampleSnapshot()))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRedisSnapshotStore_JSONCorrupto(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set("k", "{no-es-json"))

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestNewRedis_URLInvalida(t *testing.T) {
	_, err := cache.NewRedis(context.Background(), "http://no-es-redis")
	assert.Error(t, err)
}

func TestNewRedis_Conecta(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := cache.NewRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}
