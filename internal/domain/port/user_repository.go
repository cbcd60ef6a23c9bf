package port

import (
	"context"

	"coffee-bot/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error

	// BeginProcessing атомарно переводит пользователя в StateProcessing.
	// Возвращает false, если предыдущее фото ещё обрабатывается.
	BeginProcessing(ctx context.Context, userID, chatID int64) (*entity.User, bool, error)

	// SetStateIfIdle атомарно меняет состояние, если фото сейчас не обрабатывается.
	// Возвращает false и текущего пользователя, если идёт обработка.
	SetStateIfIdle(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, bool, error)
}
