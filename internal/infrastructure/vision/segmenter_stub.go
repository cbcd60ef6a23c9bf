//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// GoCVSegmenter заглушка сегментатора (без OpenCV)
type GoCVSegmenter struct {
	Params entity.SegmentationParams
	Labels entity.LabelSet
}

// NewGoCVSegmenter проверяет параметры и создаёт заглушку.
func NewGoCVSegmenter(params entity.SegmentationParams, labels entity.LabelSet) (*GoCVSegmenter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &GoCVSegmenter{Params: params, Labels: labels}, nil
}

// Segment возвращает ошибку, если сборка без тега gocv.
func (s *GoCVSegmenter) Segment(ctx context.Context, img image.Image) (*entity.SegmentationResult, error) {
	return nil, errNoGoCV
}

// Crop возвращает ошибку, если сборка без тега gocv.
func (s *GoCVSegmenter) Crop(ctx context.Context, img image.Image, beans []entity.BeanRecord) ([]entity.CroppedBean, error) {
	return nil, errNoGoCV
}

// Highlight возвращает ошибку, если сборка без тега gocv.
func (s *GoCVSegmenter) Highlight(img image.Image, beans []entity.BeanRecord) (image.Image, error) {
	return nil, errNoGoCV
}

var _ port.BeanSegmenter = (*GoCVSegmenter)(nil)
