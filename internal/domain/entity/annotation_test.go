package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestAnnotation_JSON(t *testing.T) {
	res := &SegmentationResult{
		ImageWidth:  640,
		ImageHeight: 480,
		Beans:       []BeanRecord{NewBeanRecord(Polygon{{1, 2}, {5, 2}, {3, 7}})},
	}
	data, err := json.Marshal(NewAnnotation("a.jpg", res))
	require.NoError(t, err)
	require.JSONEq(t, `{"image":"a.jpg","width":640,"height":480,
		"beans":[{"label":"unclassified","points":[[1,2],[5,2],[3,7]]}]}`, string(data))

	empty, err := json.Marshal(NewAnnotation("b.jpg", &SegmentationResult{}))
	require.NoError(t, err)
	require.Contains(t, string(empty), `"beans":[]`)
}

func TestAnnotation_Validate(t *testing.T) {
	a := &Annotation{Beans: []BeanRecord{
		{Label: "sadio", Points: Polygon{{0, 0}, {4, 0}, {0, 4}}},
		{Label: "verde", Points: Polygon{{0, 0}, {4, 0}}},
		{Label: "preto", Points: Polygon{{1, 1}, {1, 1}, {1, 1}}},
	}}

	err := a.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidInput))
	require.Len(t, multierr.Errors(err), 2)
	require.ErrorContains(t, err, "bean 1")
	require.ErrorContains(t, err, "bean 2")

	a.Beans = a.Beans[:1]
	require.NoError(t, a.Validate())
}
