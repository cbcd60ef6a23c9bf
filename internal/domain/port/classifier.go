package port

import (
	"context"

	"coffee-bot/internal/domain/entity"
)

// BeanClassifier внешний классификатор дефектов
type BeanClassifier interface {
	// Classify возвращает вектор вероятностей классов для каждой вырезки
	Classify(ctx context.Context, crops []entity.CroppedBean) ([][]float64, error)
}
