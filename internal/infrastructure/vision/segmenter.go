//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

// GoCVSegmenter конвейер сегментации зёрен на OpenCV
type GoCVSegmenter struct {
	Params entity.SegmentationParams
	Labels entity.LabelSet
}

// NewGoCVSegmenter создаёт сегментатор с проверенными параметрами.
func NewGoCVSegmenter(params entity.SegmentationParams, labels entity.LabelSet) (*GoCVSegmenter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if labels.Len() == 0 {
		return nil, fmt.Errorf("%w: empty label set", entity.ErrInvalidConfig)
	}
	return &GoCVSegmenter{Params: params, Labels: labels}, nil
}

// Segment находит зёрна на изображении. Фото без зёрен даёт пустой результат, не ошибку.
func (s *GoCVSegmenter) Segment(ctx context.Context, img image.Image) (*entity.SegmentationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mat, err := imageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	polygons, level, err := FindBeans(ctx, mat, s.Params)
	if err != nil {
		return nil, err
	}

	beans := make([]entity.BeanRecord, len(polygons))
	for i, p := range polygons {
		beans[i] = entity.NewBeanRecord(p)
	}
	return &entity.SegmentationResult{
		ImageWidth:  mat.Cols(),
		ImageHeight: mat.Rows(),
		Beans:       beans,
		OtsuLevel:   float64(level),
	}, nil
}

// Crop вырезает зёрна для классификатора.
func (s *GoCVSegmenter) Crop(ctx context.Context, img image.Image, beans []entity.BeanRecord) ([]entity.CroppedBean, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mat, err := imageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	return CropBeans(mat, beans, s.Labels, s.Params.CropSize)
}

// Highlight возвращает копию изображения с контурами зёрен.
func (s *GoCVSegmenter) Highlight(img image.Image, beans []entity.BeanRecord) (image.Image, error) {
	mat, err := imageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	drawBeans(&mat, beans)
	return mat.ToImage()
}

// Otsu выполняет пороговый этап и водораздел: возвращает выбранный канал,
// очищенную маску с разделёнными зёрнами и найденный порог.
func Otsu(src gocv.Mat, p entity.ThresholdParams) (channel gocv.Mat, mask gocv.Mat, level float32, err error) {
	t, err := Threshold(src, p)
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), 0, err
	}
	defer t.Close()

	mask, _ = Separate(src, t, p.ErodeIterations)
	return t.Channel.Clone(), mask, t.Level, nil
}

// FindBeans прогоняет весь конвейер до контуров.
func FindBeans(ctx context.Context, src gocv.Mat, p entity.SegmentationParams) ([]entity.Polygon, float32, error) {
	channel, mask, level, err := Otsu(src, p.Threshold)
	if err != nil {
		return nil, 0, err
	}
	defer channel.Close()
	defer mask.Close()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return ExtractBeans(mask, p.Contour), level, nil
}

// Проверка реализации интерфейса
var _ port.BeanSegmenter = (*GoCVSegmenter)(nil)
