package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain"
)

var _ analytics.SnapshotStore = (*MemorySnapshotStore)(nil)

type memoryEntry struct {
	snap      *dto.DashboardMetricsResponse
	expiresAt time.Time // cero = no expira
}

// MemorySnapshotStore store en memoria del proceso, usado cuando no hay REDIS_URL.
type MemorySnapshotStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySnapshotStore construye el store. ttl <= 0 guarda sin expiración.
func NewMemorySnapshotStore(ttl time.Duration) *MemorySnapshotStore {
	return &MemorySnapshotStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get devuelve domain.ErrSnapshotNotFound si la clave no existe o expiró.
func (s *MemorySnapshotStore) Get(_ context.Context, key string) (*dto.DashboardMetricsResponse, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, domain.ErrSnapshotNotFound
	}
	return e.snap, nil
}

// Save reemplaza el snapshot de la clave.
func (s *MemorySnapshotStore) Save(_ context.Context, key string, snap *dto.DashboardMetricsResponse) error {
	e := memoryEntry{snap: snap}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}
