package entity

import (
	"fmt"

	"go.uber.org/multierr"
)

// Annotation разметка одной фотографии: файл изображения и его зёрна
type Annotation struct {
	Image  string       `json:"image"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Beans  []BeanRecord `json:"beans"`
}

// NewAnnotation строит разметку из результата сегментации
func NewAnnotation(image string, res *SegmentationResult) *Annotation {
	beans := res.Beans
	if beans == nil {
		beans = []BeanRecord{}
	}
	return &Annotation{
		Image:  image,
		Width:  res.ImageWidth,
		Height: res.ImageHeight,
		Beans:  beans,
	}
}

// Validate проверяет все полигоны и называет каждое плохое зерно
func (a *Annotation) Validate() error {
	var err error
	for i, b := range a.Beans {
		if e := b.Validate(); e != nil {
			err = multierr.Append(err, fmt.Errorf("bean %d: %w", i, e))
		}
	}
	return err
}
