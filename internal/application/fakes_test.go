package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"coffee-bot/internal/domain/entity"
)

// fakeSegmenter возвращает заранее заданные зёрна
type fakeSegmenter struct {
	beans    []entity.BeanRecord
	fail     error
	badCrops map[int]bool // зёрна, которые не удаётся вырезать

	mu       sync.Mutex
	segments int
}

func (f *fakeSegmenter) Segment(ctx context.Context, img image.Image) (*entity.SegmentationResult, error) {
	f.mu.Lock()
	f.segments++
	f.mu.Unlock()

	if f.fail != nil {
		return nil, f.fail
	}
	b := img.Bounds()
	return &entity.SegmentationResult{
		ImageWidth:  b.Dx(),
		ImageHeight: b.Dy(),
		Beans:       append([]entity.BeanRecord(nil), f.beans...),
		OtsuLevel:   120,
	}, nil
}

func (f *fakeSegmenter) Crop(ctx context.Context, img image.Image, beans []entity.BeanRecord) ([]entity.CroppedBean, error) {
	labels := entity.DefaultLabelSet()
	out := make([]entity.CroppedBean, len(beans))
	var err error
	for i, b := range beans {
		out[i] = entity.CroppedBean{LabelIndex: labels.Index(b.Label)}
		if f.badCrops[i] {
			err = multierr.Append(err, fmt.Errorf("bean %d: %w", i, entity.ErrInvalidInput))
			continue
		}
		out[i].Pixels = image.NewRGBA(image.Rect(0, 0, 8, 8))
	}
	return out, err
}

func (f *fakeSegmenter) Highlight(img image.Image, beans []entity.BeanRecord) (image.Image, error) {
	return imaging.Clone(img), nil
}

// fakeClassifier отдаёт по вектору на вырезку: класс i-й вырезки берётся из classes
type fakeClassifier struct {
	classes []int
	fail    error
}

func (f *fakeClassifier) Classify(ctx context.Context, crops []entity.CroppedBean) ([][]float64, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([][]float64, len(crops))
	for i := range crops {
		p := make([]float64, len(entity.DefaultLabelNames))
		p[f.classes[i%len(f.classes)]] = 0.9
		out[i] = p
	}
	return out, nil
}

var errBroken = errors.New("broken")

func square(x, y, size int) entity.BeanRecord {
	return entity.NewBeanRecord(entity.Polygon{
		{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size},
	})
}

func testImage(w, h int) *image.NRGBA {
	return imaging.New(w, h, color.NRGBA{R: 220, G: 220, B: 210, A: 255})
}

func testPhoto(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, testImage(w, h), imaging.PNG))
	return buf.Bytes()
}
