package port

import (
	"context"

	"coffee-bot/internal/domain/entity"
)

// TallyRepository интерфейс хранилища итогов подсчёта
type TallyRepository interface {
	// Save сохраняет итог и присваивает ему ID
	Save(ctx context.Context, tally *entity.Tally) error

	// ListByUser возвращает последние итоги пользователя, новые первыми
	ListByUser(ctx context.Context, userID int64, limit int) ([]*entity.Tally, error)
}
