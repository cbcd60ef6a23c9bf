//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"coffee-bot/internal/domain/entity"
)

var outlineColor = color.RGBA{G: 255, A: 255}

// drawBeans рисует замкнутые контуры зёрен на изображении.
func drawBeans(dst *gocv.Mat, beans []entity.BeanRecord) {
	if len(beans) == 0 {
		return
	}
	outlines := make([][]image.Point, 0, len(beans))
	for _, bean := range beans {
		if len(bean.Points) == 0 {
			continue
		}
		outlines = append(outlines, toImagePoints(bean.Points, image.Point{}))
	}
	pv := gocv.NewPointsVectorFromPoints(outlines)
	defer pv.Close()
	gocv.Polylines(dst, pv, true, outlineColor, 2)
}
