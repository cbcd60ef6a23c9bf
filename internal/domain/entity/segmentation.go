package entity

import (
	"image"
	"time"
)

// SegmentationResult зёрна, найденные на одной фотографии
type SegmentationResult struct {
	ImageWidth  int          // ширина изображения
	ImageHeight int          // высота изображения
	Beans       []BeanRecord // найденные зёрна, порядок трассировки
	OtsuLevel   float64      // порог Оцу, выбранный для этого изображения
}

// CroppedBean квадратная вырезка зерна для классификатора.
// Пиксели вне силуэта зерна обнулены.
type CroppedBean struct {
	Pixels     image.Image
	LabelIndex int // UnknownLabelIndex, если метка не из набора
}

// Tally итог подсчёта зёрен на одной фотографии
type Tally struct {
	ID           int64
	UserID       int64
	Counts       LabelCount
	Total        int // всего найдено зёрен
	Unclassified int // зёрна без класса
	CreatedAt    time.Time
}

// NewTally собирает итог: всё, что не попало в Counts, считается неклассифицированным.
func NewTally(userID int64, counts LabelCount, total int) *Tally {
	unclassified := total - counts.Total()
	if unclassified < 0 {
		unclassified = 0
	}
	return &Tally{
		UserID:       userID,
		Counts:       counts,
		Total:        total,
		Unclassified: unclassified,
		CreatedAt:    time.Now(),
	}
}
