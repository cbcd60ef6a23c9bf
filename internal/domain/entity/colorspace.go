package entity

import (
	"fmt"
	"strings"
)

// ColorSpace цветовое пространство, в котором ищется порог
type ColorSpace int

const (
	ColorSpaceRGB ColorSpace = iota + 1
	ColorSpaceGray
	ColorSpaceHSV
	ColorSpaceLAB
	ColorSpaceYUV
)

var colorSpaceNames = map[ColorSpace]string{
	ColorSpaceRGB:  "rgb",
	ColorSpaceGray: "gray",
	ColorSpaceHSV:  "hsv",
	ColorSpaceLAB:  "lab",
	ColorSpaceYUV:  "yuv",
}

// ParseColorSpace разбирает имя цветового пространства без учёта регистра.
func ParseColorSpace(name string) (ColorSpace, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for cs, n := range colorSpaceNames {
		if n == name {
			return cs, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown color space %q", ErrInvalidConfig, name)
}

func (c ColorSpace) String() string {
	if n, ok := colorSpaceNames[c]; ok {
		return n
	}
	return fmt.Sprintf("ColorSpace(%d)", int(c))
}

// Valid сообщает, является ли значение одним из известных пространств.
func (c ColorSpace) Valid() bool {
	_, ok := colorSpaceNames[c]
	return ok
}

// Channels число каналов после преобразования; для серого канал не выбирается.
func (c ColorSpace) Channels() int {
	if c == ColorSpaceGray {
		return 1
	}
	return 3
}
