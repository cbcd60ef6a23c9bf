package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSegmentationParams_Valid(t *testing.T) {
	require.NoError(t, DefaultSegmentationParams().Validate())
}

func TestSegmentationParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *SegmentationParams)
	}{
		{"unknown color space", func(p *SegmentationParams) { p.Threshold.ColorSpace = 42 }},
		{"channel out of range", func(p *SegmentationParams) { p.Threshold.Channel = 3 }},
		{"negative iterations", func(p *SegmentationParams) { p.Threshold.ErodeIterations = -1 }},
		{"ratio above one", func(p *SegmentationParams) { p.Threshold.ForegroundRatio = 1.5 }},
		{"zero expansion", func(p *SegmentationParams) { p.Contour.Expansion = 0 }},
		{"empty area range", func(p *SegmentationParams) { p.Contour.MaxArea = p.Contour.MinArea }},
		{"zero crop", func(p *SegmentationParams) { p.CropSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultSegmentationParams()
			tt.mutate(&p)
			require.ErrorIs(t, p.Validate(), ErrInvalidConfig)
		})
	}
}

func TestThresholdParams_GrayIgnoresChannel(t *testing.T) {
	p := DefaultSegmentationParams().Threshold
	p.ColorSpace = ColorSpaceGray
	p.Channel = 7
	require.NoError(t, p.Validate())
}
