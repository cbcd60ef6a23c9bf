//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"coffee-bot/internal/domain/entity"
)

// imageToMat копирует image.Image в 8-битную трёхканальную матрицу BGR.
func imageToMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), fmt.Errorf("%w: image is missing", entity.ErrInvalidInput)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), fmt.Errorf("%w: empty image %dx%d", entity.ErrInvalidInput, w, h)
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat, nil
}

// checkColorMat проверяет, что матрица является непустым 8-битным цветным изображением.
func checkColorMat(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("%w: empty image", entity.ErrInvalidInput)
	}
	if mat.Channels() != 3 {
		return fmt.Errorf("%w: expected 3 channels, got %d", entity.ErrInvalidInput, mat.Channels())
	}
	return nil
}

func toImagePoints(p entity.Polygon, offset image.Point) []image.Point {
	pts := make([]image.Point, len(p))
	for i, pt := range p {
		pts[i] = image.Pt(pt.X-offset.X, pt.Y-offset.Y)
	}
	return pts
}
