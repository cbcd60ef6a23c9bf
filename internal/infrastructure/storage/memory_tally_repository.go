package storage

import (
	"context"
	"sync"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

// MemoryTallyRepository in-memory хранилище итогов подсчёта
type MemoryTallyRepository struct {
	mu     sync.Mutex
	nextID int64
	byUser map[int64][]entity.Tally
}

// NewMemoryTallyRepository создаёт новое in-memory хранилище итогов
func NewMemoryTallyRepository() *MemoryTallyRepository {
	return &MemoryTallyRepository{
		byUser: make(map[int64][]entity.Tally),
	}
}

// Save сохраняет копию итога и присваивает ему ID
func (r *MemoryTallyRepository) Save(ctx context.Context, tally *entity.Tally) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	tally.ID = r.nextID

	stored := *tally
	stored.Counts = copyCounts(tally.Counts)
	r.byUser[tally.UserID] = append(r.byUser[tally.UserID], stored)
	return nil
}

// ListByUser возвращает последние limit итогов пользователя, новые первыми.
// limit <= 0 означает все.
func (r *MemoryTallyRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entity.Tally, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tallies := r.byUser[userID]
	if limit <= 0 || limit > len(tallies) {
		limit = len(tallies)
	}

	out := make([]*entity.Tally, 0, limit)
	for i := len(tallies) - 1; i >= 0 && len(out) < limit; i-- {
		t := tallies[i]
		t.Counts = copyCounts(t.Counts)
		out = append(out, &t)
	}
	return out, nil
}

func copyCounts(c entity.LabelCount) entity.LabelCount {
	out := make(entity.LabelCount, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

var _ port.TallyRepository = (*MemoryTallyRepository)(nil)
