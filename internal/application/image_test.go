package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"coffee-bot/internal/domain/entity"
)

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage(testPhoto(t, 30, 20))
	require.NoError(t, err)
	require.Equal(t, 30, img.Bounds().Dx())
	require.Equal(t, 20, img.Bounds().Dy())

	_, err = DecodeImage(nil)
	require.True(t, errors.Is(err, entity.ErrInvalidInput))

	_, err = DecodeImage([]byte{0xff, 0xd8, 0x00})
	require.True(t, errors.Is(err, entity.ErrInvalidInput))
}

func TestEncodeJPEG(t *testing.T) {
	data, err := EncodeJPEG(testImage(16, 12))
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xd8}, data[:2])

	img, err := DecodeImage(data)
	require.NoError(t, err)
	require.Equal(t, 12, img.Bounds().Dy())
}
