//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"
)

const (
	// markerUnknown маркер пикселя, который водораздел должен разрешить сам.
	markerUnknown int32 = 0
	// markerRidge значение, которым водораздел помечает границы между бассейнами.
	markerRidge int32 = -1
)

// Separate разделяет касающиеся зёрна водоразделом.
// Каждая связная область SureForeground получает свой маркер (фон получает 1),
// область Unknown размечается нулём, после заливки по градиенту src
// пиксели гребней вычищаются из маски Оцу, а маска слегка эродируется.
// Возвращает новую маску и число найденных ядер (без фона).
func Separate(src gocv.Mat, t *Thresholded, erodeIterations int) (gocv.Mat, int) {
	markers := gocv.NewMat()
	defer markers.Close()
	components := gocv.ConnectedComponents(t.SureForeground, &markers)

	rows, cols := markers.Rows(), markers.Cols()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			// Сдвигаем метки на единицу: 0 зарезервирован за неизвестной областью.
			m := markers.GetIntAt(y, x) + 1
			if t.Unknown.GetUCharAt(y, x) == 255 {
				m = markerUnknown
			}
			markers.SetIntAt(y, x, m)
		}
	}

	gocv.Watershed(src, &markers)

	separated := t.Mask.Clone()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if markers.GetIntAt(y, x) == markerRidge {
				separated.SetUCharAt(y, x, 0)
			}
		}
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()
	result := gocv.NewMat()
	erode(separated, &result, kernel, erodeIterations)
	separated.Close()

	return result, components - 1
}
