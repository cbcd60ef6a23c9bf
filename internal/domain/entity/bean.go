package entity

import (
	"encoding/json"
	"fmt"
	"math"
)

// UnclassifiedLabel метка зерна, которому ещё не присвоен класс
const UnclassifiedLabel = "unclassified"

// Point точка контура в пикселях изображения
type Point struct {
	X int
	Y int
}

// MarshalJSON кодирует точку как пару [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON принимает пару [x, y]; дробные координаты отбрасывают дробную часть.
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("point: expected [x, y], got %d values", len(xy))
	}
	if math.IsNaN(xy[0]) || math.IsNaN(xy[1]) {
		return fmt.Errorf("point: NaN coordinate")
	}
	p.X = int(xy[0])
	p.Y = int(xy[1])
	return nil
}

// Polygon замкнутый контур зерна, точки идут в порядке обхода
type Polygon []Point

// BeanRecord зерно на фотографии и его метка
type BeanRecord struct {
	Label  string  `json:"label"`
	Points Polygon `json:"points"`
}

// NewBeanRecord создаёт запись для только что найденного зерна.
func NewBeanRecord(points Polygon) BeanRecord {
	return BeanRecord{Label: UnclassifiedLabel, Points: points}
}

// Validate проверяет, что контур состоит хотя бы из трёх различных точек.
func (b BeanRecord) Validate() error {
	if n := b.Points.distinct(); n < 3 {
		return fmt.Errorf("%w: polygon has %d distinct points, need at least 3", ErrInvalidInput, n)
	}
	return nil
}

func (p Polygon) distinct() int {
	seen := make(map[Point]struct{}, len(p))
	for _, pt := range p {
		seen[pt] = struct{}{}
	}
	return len(seen)
}
