package port

import (
	"context"
	"image"

	"coffee-bot/internal/domain/entity"
)

// BeanSegmenter интерфейс сегментации фотографии на отдельные зёрна
type BeanSegmenter interface {
	// Segment находит зёрна на изображении
	Segment(ctx context.Context, img image.Image) (*entity.SegmentationResult, error)

	// Crop вырезает каждое зерно в квадрат фиксированного размера для классификатора.
	// Результат выровнен по beans; зерно, которое не удалось вырезать, имеет
	// Pixels == nil, и его ошибка входит в возвращаемую ошибку.
	Crop(ctx context.Context, img image.Image, beans []entity.BeanRecord) ([]entity.CroppedBean, error)

	// Highlight рисует контуры зёрен поверх изображения
	Highlight(img image.Image, beans []entity.BeanRecord) (image.Image, error)
}
