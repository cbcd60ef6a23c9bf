//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"

	"coffee-bot/internal/domain/entity"
)

// ExtractBeans трассирует контуры белых областей маски (внешние и дыры),
// заменяет каждый выпуклой оболочкой, растягивает от центроида и
// отбрасывает контуры вне диапазона площадей. Порядок совпадает с порядком трассировки.
func ExtractBeans(mask gocv.Mat, p entity.ContourParams) []entity.Polygon {
	contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxTC89L1)
	defer contours.Close()

	hulls := make([]entity.Polygon, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		hulls = append(hulls, convexHull(contours.At(i)))
	}
	return entity.FilterBeans(hulls, p.Expansion, p.MinArea, p.MaxArea)
}

// convexHull возвращает выпуклую оболочку контура в порядке обхода против часовой стрелки.
func convexHull(contour gocv.PointVector) entity.Polygon {
	pts := contour.ToPoints()
	if len(pts) < 3 {
		return fromImagePoints(pts)
	}

	hull := gocv.NewMat()
	defer hull.Close()
	gocv.ConvexHull(contour, &hull, false, false)

	out := make(entity.Polygon, 0, hull.Rows())
	for i := 0; i < hull.Rows(); i++ {
		idx := int(hull.GetIntAt(i, 0))
		if idx < 0 || idx >= len(pts) {
			continue
		}
		out = append(out, entity.Point{X: pts[idx].X, Y: pts[idx].Y})
	}
	return out
}

func fromImagePoints(pts []image.Point) entity.Polygon {
	out := make(entity.Polygon, len(pts))
	for i, pt := range pts {
		out[i] = entity.Point{X: pt.X, Y: pt.Y}
	}
	return out
}
