package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"coffee-bot/internal/domain/entity"
)

func TestAnnotationPath(t *testing.T) {
	require.Equal(t, "/data/img_01.json", AnnotationPath("/data/img_01.jpg"))
	require.Equal(t, "photo.v2.json", AnnotationPath("photo.v2.png"))
	require.Equal(t, "raw.json", AnnotationPath("raw"))
}

func TestAnnotationRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beans.json")
	in := &entity.Annotation{
		Image:  "beans.jpg",
		Width:  100,
		Height: 80,
		Beans: []entity.BeanRecord{
			{Label: "verde", Points: entity.Polygon{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 20, Y: 25}}},
		},
	}
	require.NoError(t, WriteAnnotation(path, in))

	out, err := ReadAnnotation(path)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestReadAnnotation_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"beans":[{"label":"x","points":[[1,1],[2,2]]}]}`), 0o644))
	_, err := ReadAnnotation(bad)
	require.True(t, errors.Is(err, entity.ErrInvalidInput))
	require.ErrorContains(t, err, "bean 0")

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"beans":[{"points":[[1]]}]}`), 0o644))
	_, err = ReadAnnotation(broken)
	require.True(t, errors.Is(err, entity.ErrInvalidInput))

	_, err = ReadAnnotation(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
