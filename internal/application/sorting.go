package app

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/domain/port"
)

// Analysis результат обработки одного фото
type Analysis struct {
	Tally   *entity.Tally
	Beans   []entity.BeanRecord // метки проставлены, если классификатор доступен
	Overlay []byte              // JPEG с контурами зёрен
}

// SortingService считает зёрна по классам дефектов на фото пользователя
type SortingService struct {
	segmenter  port.BeanSegmenter
	classifier port.BeanClassifier // при nil все зёрна остаются неклассифицированными
	tallies    port.TallyRepository
	labels     entity.LabelSet
	logger     *zap.SugaredLogger
}

// NewSortingService создаёт сервис подсчёта. classifier может быть nil.
func NewSortingService(
	segmenter port.BeanSegmenter,
	classifier port.BeanClassifier,
	tallies port.TallyRepository,
	labels entity.LabelSet,
	logger *zap.SugaredLogger,
) *SortingService {
	return &SortingService{
		segmenter:  segmenter,
		classifier: classifier,
		tallies:    tallies,
		labels:     labels,
		logger:     logger,
	}
}

// Labels набор классов, по которым идёт подсчёт
func (s *SortingService) Labels() entity.LabelSet {
	return s.labels
}

// Analyze сегментирует фото, классифицирует зёрна, сохраняет итог и рисует контуры.
func (s *SortingService) Analyze(ctx context.Context, userID int64, photo []byte) (*Analysis, error) {
	started := time.Now()

	img, err := DecodeImage(photo)
	if err != nil {
		return nil, err
	}

	result, err := s.segmenter.Segment(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	s.logger.Debugw("segmented",
		"user", userID,
		"beans", len(result.Beans),
		"otsu", result.OtsuLevel,
	)

	beans := result.Beans
	counts := s.labels.Count(nil)
	if s.classifier != nil && len(beans) > 0 {
		beans, counts, err = s.classify(ctx, img, beans)
		if err != nil {
			return nil, err
		}
	}

	tally := entity.NewTally(userID, counts, len(result.Beans))
	if err := s.tallies.Save(ctx, tally); err != nil {
		return nil, fmt.Errorf("save tally: %w", err)
	}

	highlighted, err := s.segmenter.Highlight(img, beans)
	if err != nil {
		return nil, fmt.Errorf("highlight: %w", err)
	}
	overlay, err := EncodeJPEG(highlighted)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("photo analyzed",
		"user", userID,
		"beans", tally.Total,
		"unclassified", tally.Unclassified,
		"elapsed", time.Since(started),
	)
	return &Analysis{Tally: tally, Beans: beans, Overlay: overlay}, nil
}

// classify вырезает зёрна, отправляет их классификатору и проставляет метки.
// Недоступный классификатор не ломает подсчёт: зёрна остаются неклассифицированными.
// Зерно, которое не удалось вырезать, тоже остаётся без класса.
func (s *SortingService) classify(ctx context.Context, img image.Image, beans []entity.BeanRecord) ([]entity.BeanRecord, entity.LabelCount, error) {
	crops, err := s.segmenter.Crop(ctx, img, beans)
	if err != nil {
		if len(crops) != len(beans) {
			return nil, nil, fmt.Errorf("crop: %w", err)
		}
		s.logger.Warnw("some beans could not be cropped", "error", err)
	}

	// классификатору уходят только удавшиеся вырезки, owner[k] хранит номер зерна k-й вырезки
	owner := make([]int, 0, len(crops))
	usable := make([]entity.CroppedBean, 0, len(crops))
	for i, c := range crops {
		if c.Pixels != nil {
			owner = append(owner, i)
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return beans, s.labels.Count(nil), nil
	}

	predictions, err := s.classifier.Classify(ctx, usable)
	if err == nil && len(predictions) != len(usable) {
		err = fmt.Errorf("got %d predictions for %d crops", len(predictions), len(usable))
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		s.logger.Warnw("classification failed, beans left unclassified", "error", err)
		return beans, s.labels.Count(nil), nil
	}

	labeled := append([]entity.BeanRecord(nil), beans...)
	for k, idx := range entity.ArgMax(predictions) {
		if name, ok := s.labels.Name(idx); ok {
			labeled[owner[k]].Label = name
		}
	}
	return labeled, s.labels.CountPredictions(predictions), nil
}

// History последние итоги пользователя, новые первыми
func (s *SortingService) History(ctx context.Context, userID int64, limit int) ([]*entity.Tally, error) {
	return s.tallies.ListByUser(ctx, userID, limit)
}
