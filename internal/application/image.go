package app

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"coffee-bot/internal/domain/entity"
)

// DecodeImage декодирует фото (JPEG, PNG, WebP) с учётом EXIF-ориентации
func DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", entity.ErrInvalidInput)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", entity.ErrInvalidInput, err)
	}
	return img, nil
}

// OpenImage открывает файл изображения с учётом EXIF-ориентации
func OpenImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", entity.ErrInvalidInput, path, err)
	}
	return img, nil
}

// EncodeJPEG кодирует изображение для отправки пользователю
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
