package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coffee-bot/internal/domain/entity"
)

// AnnotationPath путь к файлу разметки рядом с изображением: <stem>.json
func AnnotationPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".json"
}

// WriteAnnotation сохраняет разметку в JSON
func WriteAnnotation(path string, a *entity.Annotation) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal annotation: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write annotation: %w", err)
	}
	return nil
}

// ReadAnnotation читает разметку и проверяет полигоны зёрен
func ReadAnnotation(path string) (*entity.Annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotation: %w", err)
	}

	var a entity.Annotation
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrInvalidInput, filepath.Base(path), err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &a, nil
}
