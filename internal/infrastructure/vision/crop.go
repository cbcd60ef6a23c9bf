//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/multierr"
	"gocv.io/x/gocv"

	"coffee-bot/internal/domain/entity"
)

// CropBean вырезает квадратную область вокруг зерна, обнуляет всё вне его
// силуэта и масштабирует до size × size.
// Метка, которой нет в наборе, даёт индекс entity.UnknownLabelIndex.
func CropBean(src gocv.Mat, bean entity.BeanRecord, labels entity.LabelSet, size int) (entity.CroppedBean, error) {
	if err := checkColorMat(src); err != nil {
		return entity.CroppedBean{}, err
	}
	if size <= 0 {
		return entity.CroppedBean{}, fmt.Errorf("%w: crop size must be positive, got %d", entity.ErrInvalidConfig, size)
	}
	if len(bean.Points) == 0 {
		return entity.CroppedBean{}, fmt.Errorf("%w: bean has no points", entity.ErrInvalidInput)
	}

	labelIndex := labels.Index(bean.Label)
	box := entity.SquareCropBox(bean.Points, src.Cols(), src.Rows())

	// Маска строится сразу в координатах вырезки.
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), box.Dy(), box.Dx(), gocv.MatTypeCV8U)
	defer mask.Close()
	poly := gocv.NewPointsVectorFromPoints([][]image.Point{toImagePoints(bean.Points, box.Min)})
	defer poly.Close()
	gocv.FillPoly(&mask, poly, color.RGBA{R: 255, G: 255, B: 255})

	region := src.Region(box)
	defer region.Close()

	masked := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), box.Dy(), box.Dx(), gocv.MatTypeCV8UC3)
	defer masked.Close()
	region.CopyToWithMask(&masked, mask)

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(masked, &resized, image.Pt(size, size), 0, 0, gocv.InterpolationLinear)

	pixels, err := resized.ToImage()
	if err != nil {
		return entity.CroppedBean{}, fmt.Errorf("convert crop: %w", err)
	}
	return entity.CroppedBean{Pixels: pixels, LabelIndex: labelIndex}, nil
}

// CropBeans применяет CropBean к каждому зерну. Результат выровнен по beans:
// у зерна, которое не удалось вырезать, Pixels равен nil, а ошибки всех таких
// зёрен объединяются. Ошибка всего изображения возвращается без вырезок.
func CropBeans(src gocv.Mat, beans []entity.BeanRecord, labels entity.LabelSet, size int) ([]entity.CroppedBean, error) {
	if err := checkColorMat(src); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: crop size must be positive, got %d", entity.ErrInvalidConfig, size)
	}

	var errs error
	crops := make([]entity.CroppedBean, len(beans))
	for i, bean := range beans {
		crop, err := CropBean(src, bean, labels, size)
		if err != nil {
			crops[i] = entity.CroppedBean{LabelIndex: labels.Index(bean.Label)}
			errs = multierr.Append(errs, fmt.Errorf("bean %d: %w", i, err))
			continue
		}
		crops[i] = crop
	}
	return crops, errs
}
