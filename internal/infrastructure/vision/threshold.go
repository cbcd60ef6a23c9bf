//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"coffee-bot/internal/domain/entity"
)

// Thresholded промежуточные маски порогового этапа.
// Все матрицы принадлежат вызывающему и освобождаются через Close.
type Thresholded struct {
	Channel        gocv.Mat // выбранный одноканальный снимок
	Mask           gocv.Mat // бинарная маска Оцу
	Opened         gocv.Mat // маска после морфологического открытия
	SureBackground gocv.Mat // дилатированная маска: всё, что может быть зерном
	SureForeground gocv.Mat // пики дистанции: по одному ядру на зерно
	Unknown        gocv.Mat // SureBackground минус SureForeground
	Level          float32  // порог, найденный методом Оцу
}

// Close освобождает все матрицы.
func (t *Thresholded) Close() {
	for _, m := range []*gocv.Mat{&t.Channel, &t.Mask, &t.Opened, &t.SureBackground, &t.SureForeground, &t.Unknown} {
		m.Close()
	}
}

// Threshold выбирает канал, размывает его, делит порогом Оцу и готовит
// маски «точно зерно», «точно фон» и «неизвестно» для водораздела.
func Threshold(src gocv.Mat, p entity.ThresholdParams) (*Thresholded, error) {
	if err := checkColorMat(src); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	channel, err := selectChannel(src, p.ColorSpace, p.Channel)
	if err != nil {
		return nil, err
	}
	t := &Thresholded{
		Channel:        channel,
		Mask:           gocv.NewMat(),
		Opened:         gocv.NewMat(),
		SureBackground: gocv.NewMat(),
		SureForeground: gocv.NewMat(),
		Unknown:        gocv.NewMat(),
	}

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(channel, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	typ := gocv.ThresholdBinary
	if p.Invert {
		typ = gocv.ThresholdBinaryInv
	}
	t.Level = gocv.Threshold(blur, &t.Mask, 0, 255, typ+gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	// Удаляем шум: эрозия, затем дилатация, каждая OpenIterations раз.
	eroded := gocv.NewMat()
	defer eroded.Close()
	erode(t.Mask, &eroded, kernel, p.OpenIterations)
	dilate(eroded, &t.Opened, kernel, p.OpenIterations)

	dilate(t.Opened, &t.SureBackground, kernel, p.DilateIterations)

	dist := gocv.NewMat()
	defer dist.Close()
	labels := gocv.NewMat()
	defer labels.Close()
	gocv.DistanceTransform(t.Opened, &dist, &labels, gocv.DistL2, gocv.DistanceMask3, gocv.DistanceLabelCComp)

	// Максимумы дистанции лежат в центрах зёрен, даже когда зёрна касаются.
	_, maxDist, _, _ := gocv.MinMaxLoc(dist)
	fg := gocv.NewMat()
	defer fg.Close()
	gocv.Threshold(dist, &fg, float32(p.ForegroundRatio)*maxDist, 255, gocv.ThresholdBinary)
	fg.ConvertTo(&t.SureForeground, gocv.MatTypeCV8U)

	gocv.Subtract(t.SureBackground, t.SureForeground, &t.Unknown)

	return t, nil
}

// selectChannel переводит BGR-изображение в нужное пространство и возвращает один канал.
// Номер канала задан в терминах RGB-входа, поэтому для RGB порядок разворачивается.
func selectChannel(src gocv.Mat, cs entity.ColorSpace, channel int) (gocv.Mat, error) {
	converted := gocv.NewMat()
	defer converted.Close()

	switch cs {
	case entity.ColorSpaceGray:
		gray := gocv.NewMat()
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
		return gray, nil
	case entity.ColorSpaceRGB:
		src.CopyTo(&converted)
		channel = 2 - channel
	case entity.ColorSpaceHSV:
		gocv.CvtColor(src, &converted, gocv.ColorBGRToHSV)
	case entity.ColorSpaceLAB:
		gocv.CvtColor(src, &converted, gocv.ColorBGRToLab)
	case entity.ColorSpaceYUV:
		gocv.CvtColor(src, &converted, gocv.ColorBGRToYUV)
	default:
		return gocv.NewMat(), fmt.Errorf("%w: unknown color space %s", entity.ErrInvalidConfig, cs)
	}

	channels := gocv.Split(converted)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()
	if channel < 0 || channel >= len(channels) {
		return gocv.NewMat(), fmt.Errorf("%w: channel %d out of range for %s", entity.ErrInvalidConfig, channel, cs)
	}
	return channels[channel].Clone(), nil
}

// erode применяет эрозию iterations раз; при нуле итераций dst будет копией src.
func erode(src gocv.Mat, dst *gocv.Mat, kernel gocv.Mat, iterations int) {
	src.CopyTo(dst)
	for i := 0; i < iterations; i++ {
		gocv.Erode(*dst, dst, kernel)
	}
}

// dilate применяет дилатацию iterations раз; при нуле итераций dst будет копией src.
func dilate(src gocv.Mat, dst *gocv.Mat, kernel gocv.Mat, iterations int) {
	src.CopyTo(dst)
	for i := 0; i < iterations; i++ {
		gocv.Dilate(*dst, dst, kernel)
	}
}
