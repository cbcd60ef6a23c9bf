package entity

import "errors"

var (
	// ErrInvalidInput некорректный вход: нет изображения, не то число каналов,
	// полигон меньше чем из трёх точек. Фатально только для одного изображения или зерна.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig неизвестное цветовое пространство или параметр вне допустимого диапазона.
	ErrInvalidConfig = errors.New("invalid configuration")
)
