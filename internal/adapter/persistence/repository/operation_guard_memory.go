package repository

import (
	"context"
	"sync"
	"time"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const defaultGuardTTL = 30 * time.Second

type guardEntry struct {
	token     string
	operation string
	expiresAt time.Time
}

// MemoryOperationGuard is the single-instance guard. Entries expire after ttl
// so a crashed request cannot block an order forever.
type MemoryOperationGuard struct {
	mu      sync.Mutex
	entries map[int64]guardEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ interfaces.IOperationGuard = (*MemoryOperationGuard)(nil)

func NewMemoryOperationGuard(ttl time.Duration) *MemoryOperationGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &MemoryOperationGuard{entries: map[int64]guardEntry{}, ttl: ttl, now: time.Now}
}

func (g *MemoryOperationGuard) Acquire(_ context.Context, orderID int64, operation string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if e, ok := g.entries[orderID]; ok && now.Before(e.expiresAt) {
		return "", entities.ErrOperationInFlight
	}
	token := uuid.NewString()
	g.entries[orderID] = guardEntry{token: token, operation: operation, expiresAt: now.Add(g.ttl)}
	return token, nil
}

func (g *MemoryOperationGuard) Release(_ context.Context, orderID int64, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.entries[orderID]; ok && e.token == token {
		delete(g.entries, orderID)
	}
	return nil
}
