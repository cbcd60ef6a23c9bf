//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"coffee-bot/internal/domain/entity"
)

var (
	background = gocv.NewScalar(225, 230, 235, 0)
	beanColor  = color.RGBA{R: 70, G: 45, B: 30, A: 255}
)

// newScene светлый фон с тёмными круглыми «зёрнами».
func newScene(t *testing.T, w, h, radius int, centers ...image.Point) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(background, h, w, gocv.MatTypeCV8UC3)
	for _, c := range centers {
		gocv.Circle(&mat, c, radius, beanColor, -1)
	}
	t.Cleanup(func() { mat.Close() })
	return mat
}

func newMask(t *testing.T, w, h int) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), h, w, gocv.MatTypeCV8U)
	t.Cleanup(func() { mat.Close() })
	return mat
}

func testParams() entity.SegmentationParams {
	p := entity.DefaultSegmentationParams()
	p.Threshold.OpenIterations = 2
	p.Threshold.DilateIterations = 3
	p.Contour.MaxArea = 10000
	return p
}

func toImage(t *testing.T, mat gocv.Mat) image.Image {
	t.Helper()
	img, err := mat.ToImage()
	require.NoError(t, err)
	return img
}
