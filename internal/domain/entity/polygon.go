package entity

import "image"

// Bounds возвращает крайние координаты контура.
// Max включительный: это координаты самой правой и самой нижней точек.
func (p Polygon) Bounds() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
	}
	return min, max
}

// BoxArea площадь описывающего прямоугольника (width × height).
// Это грубая оценка сверху, а не площадь многоугольника.
func (p Polygon) BoxArea() int {
	min, max := p.Bounds()
	return (max.X - min.X) * (max.Y - min.Y)
}

// Centroid среднее арифметическое координат точек (без взвешивания по площади),
// дробная часть отбрасывается.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sx, sy int
	for _, pt := range p {
		sx += pt.X
		sy += pt.Y
	}
	n := float64(len(p))
	return Point{X: int(float64(sx) / n), Y: int(float64(sy) / n)}
}

// Expand растягивает контур от центроида в factor раз.
// Так компенсируется зазор, оставленный между соседними зёрнами при разделении.
func (p Polygon) Expand(factor float64) Polygon {
	c := p.Centroid()
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = Point{
			X: int(float64(pt.X-c.X)*factor + float64(c.X)),
			Y: int(float64(pt.Y-c.Y)*factor + float64(c.Y)),
		}
	}
	return out
}

// FilterBeans расширяет выпуклые контуры и отбрасывает те, чья площадь
// описывающего прямоугольника не попадает строго в (minArea, maxArea).
// Мелкие контуры обычно шум трассировки, крупные обычно слипшиеся группы зёрен.
// Контуры меньше чем из трёх различных точек (отрезки) тоже отбрасываются.
func FilterBeans(hulls []Polygon, expansion float64, minArea, maxArea int) []Polygon {
	beans := make([]Polygon, 0, len(hulls))
	for _, hull := range hulls {
		if len(hull) == 0 {
			continue
		}
		expanded := hull.Expand(expansion)
		if expanded.distinct() < 3 {
			continue
		}
		area := expanded.BoxArea()
		if area <= minArea || area >= maxArea {
			continue
		}
		beans = append(beans, expanded)
	}
	return beans
}

// SquareCropBox вычисляет квадратную область вырезки зерна внутри изображения width × height.
// Прямоугольник контура обрезается по границам, приводится к квадрату с
// полуразмером max(w, h)/2 вокруг своего центра и снова обрезается.
// Результат никогда не бывает пустым: минимум 1×1.
func SquareCropBox(p Polygon, width, height int) image.Rectangle {
	min, max := p.Bounds()
	xmin := clamp(min.X, 0, width-1)
	ymin := clamp(min.Y, 0, height-1)
	xmax := clamp(max.X, 0, width-1)
	ymax := clamp(max.Y, 0, height-1)

	sizeX := xmax - xmin
	sizeY := ymax - ymin
	half := maxInt(sizeX, sizeY) / 2

	cx := sizeX/2 + xmin
	cy := sizeY/2 + ymin

	x0 := clamp(cx-half, 0, width-1)
	y0 := clamp(cy-half, 0, height-1)
	x1 := clamp(cx+half, 0, width-1)
	y1 := clamp(cy+half, 0, height-1)

	// Вырожденный контур (точка или отрезок) даёт пустую область.
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
