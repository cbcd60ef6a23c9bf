package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColorSpace(t *testing.T) {
	for _, cs := range []ColorSpace{ColorSpaceRGB, ColorSpaceGray, ColorSpaceHSV, ColorSpaceLAB, ColorSpaceYUV} {
		got, err := ParseColorSpace(cs.String())
		require.NoError(t, err)
		require.Equal(t, cs, got)
	}

	got, err := ParseColorSpace(" LAB ")
	require.NoError(t, err)
	require.Equal(t, ColorSpaceLAB, got)

	_, err = ParseColorSpace("cmyk")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestColorSpace_ZeroIsInvalid(t *testing.T) {
	var cs ColorSpace
	require.False(t, cs.Valid())
	require.Equal(t, "ColorSpace(0)", cs.String())
}
