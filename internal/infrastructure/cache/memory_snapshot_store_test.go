package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain"
)

func TestMemorySnapshotStore_TTL(t *testing.T) {
	clock := time.Date(2025, time.October, 16, 15, 0, 0, 0, time.UTC)
	store := NewMemorySnapshotStore(time.Minute)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	snap := &dto.DashboardMetricsResponse{RefreshID: "r-1"}
	require.NoError(t, store.Save(ctx, "k", snap))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Same(t, snap, got)

	clock = clock.Add(time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "al cumplirse el TTL la entrada se descarta")
}

func TestMemorySnapshotStore_SinTTL(t *testing.T) {
	store := NewMemorySnapshotStore(0)
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, "k", &dto.DashboardMetricsResponse{RefreshID: "r-1"}))
	require.NoError(t, store.Save(ctx, "k", &dto.DashboardMetricsResponse{RefreshID: "r-2"}))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "r-2", got.RefreshID, "Save reemplaza el snapshot anterior")
}
