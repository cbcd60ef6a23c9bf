package entity

import "fmt"

// ThresholdParams настройки порогового выделения зёрен и разделения водоразделом
type ThresholdParams struct {
	ColorSpace       ColorSpace
	Channel          int     // канал после преобразования, для серого игнорируется
	Invert           bool    // зёрна темнее фона
	OpenIterations   int     // итерации морфологического открытия ядром 3×3
	DilateIterations int     // итерации дилатации для «точно фона»
	ForegroundRatio  float64 // доля максимума дистанции для «точно зерна»
	ErodeIterations  int     // итерации финальной эрозии маски
}

// ContourParams настройки извлечения контуров
type ContourParams struct {
	Expansion float64 // во сколько раз растянуть контур от центроида
	MinArea   int     // площадь прямоугольника должна быть строго больше
	MaxArea   int     // и строго меньше
}

// SegmentationParams полный набор параметров конвейера
type SegmentationParams struct {
	Threshold ThresholdParams
	Contour   ContourParams
	CropSize  int // сторона квадратной вырезки для классификатора
}

// DefaultSegmentationParams параметры, на которых откалиброван эталонный набор фотографий.
func DefaultSegmentationParams() SegmentationParams {
	return SegmentationParams{
		Threshold: ThresholdParams{
			ColorSpace:       ColorSpaceLAB,
			Channel:          0,
			Invert:           true,
			OpenIterations:   5,
			DilateIterations: 5,
			ForegroundRatio:  0.7,
			ErodeIterations:  1,
		},
		Contour: ContourParams{
			Expansion: 1.1,
			MinArea:   200,
			MaxArea:   4000,
		},
		CropSize: 64,
	}
}

// Validate проверяет пороговые параметры.
func (p ThresholdParams) Validate() error {
	if !p.ColorSpace.Valid() {
		return fmt.Errorf("%w: unknown color space %s", ErrInvalidConfig, p.ColorSpace)
	}
	if p.ColorSpace != ColorSpaceGray && (p.Channel < 0 || p.Channel >= p.ColorSpace.Channels()) {
		return fmt.Errorf("%w: channel %d out of range for %s", ErrInvalidConfig, p.Channel, p.ColorSpace)
	}
	if p.OpenIterations < 0 || p.DilateIterations < 0 || p.ErodeIterations < 0 {
		return fmt.Errorf("%w: negative morphology iterations", ErrInvalidConfig)
	}
	if p.ForegroundRatio < 0 || p.ForegroundRatio > 1 {
		return fmt.Errorf("%w: foreground ratio %.2f not in [0, 1]", ErrInvalidConfig, p.ForegroundRatio)
	}
	return nil
}

// Validate проверяет параметры контуров.
func (p ContourParams) Validate() error {
	if p.Expansion <= 0 {
		return fmt.Errorf("%w: expansion must be positive, got %.2f", ErrInvalidConfig, p.Expansion)
	}
	if p.MinArea < 0 || p.MaxArea <= p.MinArea {
		return fmt.Errorf("%w: area bounds (%d, %d) are empty", ErrInvalidConfig, p.MinArea, p.MaxArea)
	}
	return nil
}

// Validate проверяет все параметры конвейера.
func (p SegmentationParams) Validate() error {
	if err := p.Threshold.Validate(); err != nil {
		return err
	}
	if err := p.Contour.Validate(); err != nil {
		return err
	}
	if p.CropSize <= 0 {
		return fmt.Errorf("%w: crop size must be positive, got %d", ErrInvalidConfig, p.CropSize)
	}
	return nil
}
