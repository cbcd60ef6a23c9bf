package app

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

// BatchInput одно изображение пакета. Open вызывается внутри воркера.
type BatchInput struct {
	Name string
	Open func() (image.Image, error)
}

// FileInput вход пакета из файла на диске
func FileInput(path string) BatchInput {
	return BatchInput{
		Name: filepath.Base(path),
		Open: func() (image.Image, error) { return OpenImage(path) },
	}
}

// BatchResult результат сегментации одного изображения пакета
type BatchResult struct {
	Name   string
	Result *entity.SegmentationResult
	Err    error
}

// CropInput размеченное изображение для нарезки
type CropInput struct {
	BatchInput
	Annotation *entity.Annotation
}

// CropResult вырезки одного изображения. Crops выровнены по зёрнам разметки и
// могут быть заполнены частично, даже если Err не nil.
type CropResult struct {
	Name  string
	Crops []entity.CroppedBean
	Err   error
}

// BatchService обрабатывает много изображений ограниченным пулом воркеров
type BatchService struct {
	segmenter port.BeanSegmenter
	workers   int
	logger    *zap.SugaredLogger

	// OnDone вызывается после каждого изображения, из горутины воркера
	OnDone func(name string, err error)
}

// NewBatchService создаёт пакетный сервис; workers < 1 означает один воркер.
func NewBatchService(segmenter port.BeanSegmenter, workers int, logger *zap.SugaredLogger) *BatchService {
	if workers < 1 {
		workers = 1
	}
	return &BatchService{segmenter: segmenter, workers: workers, logger: logger}
}

// SegmentAll сегментирует все изображения. Ошибка одного изображения не
// останавливает остальные; результаты идут в порядке входа, ошибки объединены.
func (s *BatchService) SegmentAll(ctx context.Context, inputs []BatchInput) ([]BatchResult, error) {
	results := make([]BatchResult, len(inputs))

	s.run(ctx, len(inputs), func(i int) {
		in := inputs[i]
		results[i].Name = in.Name
		results[i].Result, results[i].Err = s.segment(ctx, in)
		s.done(in.Name, results[i].Err)
	})

	var err error
	for _, r := range results {
		if r.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return results, err
}

// CropAll нарезает зёрна по готовой разметке, метки разрешаются набором сегментатора.
func (s *BatchService) CropAll(ctx context.Context, inputs []CropInput) ([]CropResult, error) {
	results := make([]CropResult, len(inputs))

	s.run(ctx, len(inputs), func(i int) {
		in := inputs[i]
		results[i].Name = in.Name
		results[i].Crops, results[i].Err = s.crop(ctx, in)
		s.done(in.Name, results[i].Err)
	})

	var err error
	for _, r := range results {
		if r.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return results, err
}

func (s *BatchService) run(ctx context.Context, n int, job func(i int)) {
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			job(i)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *BatchService) segment(ctx context.Context, in BatchInput) (*entity.SegmentationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := in.Open()
	if err != nil {
		return nil, err
	}
	res, err := s.segmenter.Segment(ctx, img)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("segmented", "image", in.Name, "beans", len(res.Beans), "otsu", res.OtsuLevel)
	return res, nil
}

func (s *BatchService) crop(ctx context.Context, in CropInput) ([]entity.CroppedBean, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Annotation == nil {
		return nil, fmt.Errorf("%w: no annotation", entity.ErrInvalidInput)
	}
	img, err := in.Open()
	if err != nil {
		return nil, err
	}
	// при ошибке отдельных зёрен остальные вырезки сохраняются
	crops, err := s.segmenter.Crop(ctx, img, in.Annotation.Beans)
	s.logger.Debugw("cropped", "image", in.Name, "beans", len(crops))
	return crops, err
}

func (s *BatchService) done(name string, err error) {
	if err != nil {
		s.logger.Warnw("image failed", "image", name, "error", err)
	}
	if s.OnDone != nil {
		s.OnDone(name, err)
	}
}
