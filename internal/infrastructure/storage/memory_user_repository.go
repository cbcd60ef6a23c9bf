package storage

import (
	"context"
	"sync"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей.
// Хранит копии: обработчики бота работают параллельно.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[int64]entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]entity.User),
	}
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.getLocked(userID, chatID)
	return &user, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users[user.ID] = *user
	r.mu.Unlock()

	return nil
}

// BeginProcessing переводит пользователя в обработку, если он не занят
func (r *MemoryUserRepository) BeginProcessing(ctx context.Context, userID, chatID int64) (*entity.User, bool, error) {
	return r.SetStateIfIdle(ctx, userID, chatID, entity.StateProcessing)
}

// SetStateIfIdle меняет состояние, только если пользователь не в обработке
func (r *MemoryUserRepository) SetStateIfIdle(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.getLocked(userID, chatID)
	if !user.AcceptsPhoto() {
		return &user, false, nil
	}
	user.SetState(state)
	r.users[userID] = user
	return &user, true, nil
}

func (r *MemoryUserRepository) getLocked(userID, chatID int64) entity.User {
	if user, ok := r.users[userID]; ok {
		return user
	}
	user := *entity.NewUser(userID, chatID)
	r.users[userID] = user
	return user
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
