package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"coffee-bot/config"
	"coffee-bot/internal/domain/entity"
)

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.JPG", "a.png", "c.webp", "notes.txt", "a.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	paths, err := listImages(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.JPG"),
		filepath.Join(dir, "c.webp"),
	}, paths)

	_, err = listImages(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	cfg, err := config.FromEnv(func(string) string { return "" })
	require.NoError(t, err)

	require.NoError(t, rootCmd.ParseFlags([]string{
		"--min-area=50", "--color-space=gray", "--labels=good,bad", "--size=32",
	}))
	require.NoError(t, applyFlags(rootCmd, cfg))

	require.Equal(t, 50, cfg.Segmentation.Contour.MinArea)
	require.Equal(t, 4000, cfg.Segmentation.Contour.MaxArea)
	require.Equal(t, entity.ColorSpaceGray, cfg.Segmentation.Threshold.ColorSpace)
	require.Equal(t, 32, cfg.Segmentation.CropSize)
	require.Equal(t, []string{"good", "bad"}, cfg.Labels.Names())

	require.NoError(t, rootCmd.ParseFlags([]string{"--max-area=10"}))
	err = applyFlags(rootCmd, cfg)
	require.True(t, errors.Is(err, entity.ErrInvalidConfig))
}

func TestReportFailures(t *testing.T) {
	require.NoError(t, reportFailures(0, 3, nil))

	err := reportFailures(1, 3, map[string]error{"a.jpg": entity.ErrInvalidInput})
	require.EqualError(t, err, "1 of 3 images failed")
}
