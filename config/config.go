package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"coffee-bot/internal/domain/entity"
)

type Config struct {
	TelegramToken    string
	LogLevel         string
	DatabaseURL      string        // если пусто, итоги хранятся в памяти
	InferenceURL     string        // если пусто, классификатора нет
	InferenceTimeout time.Duration // таймаут запроса к классификатору
	Workers          int           // параллельность пакетной обработки
	Labels           entity.LabelSet
	Segmentation     entity.SegmentationParams
}

// Load читает конфигурацию из окружения и .env
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из произвольного источника переменных.
// Все ошибки разбора возвращаются вместе.
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}
	def := entity.DefaultSegmentationParams()

	cfg := &Config{
		TelegramToken:    getenv("TELEGRAM_TOKEN"),
		LogLevel:         r.str("LOG_LEVEL", "info"),
		DatabaseURL:      getenv("DATABASE_URL"),
		InferenceURL:     getenv("INFERENCE_URL"),
		InferenceTimeout: r.duration("INFERENCE_TIMEOUT", 30*time.Second),
		Workers:          r.int("WORKERS", 4),
	}

	colorSpace := def.Threshold.ColorSpace
	if v := strings.TrimSpace(getenv("COLOR_SPACE")); v != "" {
		cs, err := entity.ParseColorSpace(v)
		r.fail(err)
		colorSpace = cs
	}

	cfg.Segmentation = entity.SegmentationParams{
		Threshold: entity.ThresholdParams{
			ColorSpace:       colorSpace,
			Channel:          r.int("CHANNEL", def.Threshold.Channel),
			Invert:           r.bool("INVERT", def.Threshold.Invert),
			OpenIterations:   r.int("OPEN_ITERATIONS", def.Threshold.OpenIterations),
			DilateIterations: r.int("DILATE_ITERATIONS", def.Threshold.DilateIterations),
			ForegroundRatio:  r.float("FOREGROUND_RATIO", def.Threshold.ForegroundRatio),
			ErodeIterations:  r.int("ERODE_ITERATIONS", def.Threshold.ErodeIterations),
		},
		Contour: entity.ContourParams{
			Expansion: r.float("EXPANSION", def.Contour.Expansion),
			MinArea:   r.int("MIN_AREA", def.Contour.MinArea),
			MaxArea:   r.int("MAX_AREA", def.Contour.MaxArea),
		},
		CropSize: r.int("CROP_SIZE", def.CropSize),
	}

	labels, err := parseLabels(getenv("LABELS"))
	r.fail(err)
	cfg.Labels = labels

	if r.err != nil {
		return nil, r.err
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: WORKERS must be positive, got %d", entity.ErrInvalidConfig, cfg.Workers)
	}
	if err := cfg.Segmentation.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseLabels(raw string) (entity.LabelSet, error) {
	if strings.TrimSpace(raw) == "" {
		return entity.DefaultLabelSet(), nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return entity.NewLabelSet(parts...)
}

// reader разбирает значения через cast и копит ошибки
type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) fail(err error) {
	r.err = multierr.Append(r.err, err)
}

func (r *reader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(r.getenv(key))
	return v, v != ""
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok {
		return v
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s=%q is not an integer", entity.ErrInvalidConfig, key, v))
		return def
	}
	return n
}

func (r *reader) float(key string, def float64) float64 {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s=%q is not a number", entity.ErrInvalidConfig, key, v))
		return def
	}
	return f
}

func (r *reader) bool(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s=%q is not a boolean", entity.ErrInvalidConfig, key, v))
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s=%q is not a duration", entity.ErrInvalidConfig, key, v))
		return def
	}
	return d
}
