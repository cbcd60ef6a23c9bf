package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coffee-bot/config"
	app "coffee-bot/internal/application"
	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/infrastructure/vision"
	"coffee-bot/internal/logging"
)

// Options флаги, общие для всех подкоманд; пустые значения берутся из окружения
type Options struct {
	LogLevel   string
	Workers    int
	Labels     string
	ColorSpace string
	Channel    int
	Invert     bool
	Open       int
	Dilate     int
	Ratio      float64
	Erode      int
	Expansion  float64
	MinArea    int
	MaxArea    int
	CropSize   int
}

var (
	opts Options

	cfg    *config.Config
	logger *zap.SugaredLogger
	batch  *app.BatchService
)

var rootCmd = &cobra.Command{
	Use:           "beanseg",
	Short:         "Batch segmentation of coffee bean photos",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}

		segmenter, err := vision.NewGoCVSegmenter(cfg.Segmentation, cfg.Labels)
		if err != nil {
			return err
		}
		batch = app.NewBatchService(segmenter, cfg.Workers, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// applyFlags переопределяет конфигурацию явно заданными флагами
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	t := &cfg.Segmentation.Threshold
	c := &cfg.Segmentation.Contour

	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if flags.Changed("labels") {
		labels, err := entity.NewLabelSet(splitLabels(opts.Labels)...)
		if err != nil {
			return err
		}
		cfg.Labels = labels
	}
	if flags.Changed("color-space") {
		cs, err := entity.ParseColorSpace(opts.ColorSpace)
		if err != nil {
			return err
		}
		t.ColorSpace = cs
	}
	if flags.Changed("channel") {
		t.Channel = opts.Channel
	}
	if flags.Changed("invert") {
		t.Invert = opts.Invert
	}
	if flags.Changed("open") {
		t.OpenIterations = opts.Open
	}
	if flags.Changed("dilate") {
		t.DilateIterations = opts.Dilate
	}
	if flags.Changed("ratio") {
		t.ForegroundRatio = opts.Ratio
	}
	if flags.Changed("erode") {
		t.ErodeIterations = opts.Erode
	}
	if flags.Changed("expansion") {
		c.Expansion = opts.Expansion
	}
	if flags.Changed("min-area") {
		c.MinArea = opts.MinArea
	}
	if flags.Changed("max-area") {
		c.MaxArea = opts.MaxArea
	}
	if flags.Changed("size") {
		cfg.Segmentation.CropSize = opts.CropSize
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive", entity.ErrInvalidConfig)
	}
	return cfg.Segmentation.Validate()
}

func splitLabels(raw string) []string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// listImages изображения каталога в порядке имён
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
}

// reportFailures печатает ошибки по файлам и возвращает итоговую ошибку
func reportFailures(failed, total int, errs map[string]error) error {
	if failed == 0 {
		return nil
	}
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, errs[name])
	}
	return fmt.Errorf("%d of %d images failed", failed, total)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	def := entity.DefaultSegmentationParams()
	f := rootCmd.PersistentFlags()

	f.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.IntVar(&opts.Workers, "workers", 4, "parallel workers")
	f.StringVar(&opts.Labels, "labels", strings.Join(entity.DefaultLabelNames, ","), "comma separated class names")
	f.StringVar(&opts.ColorSpace, "color-space", def.Threshold.ColorSpace.String(), "rgb, gray, hsv, lab or yuv")
	f.IntVar(&opts.Channel, "channel", def.Threshold.Channel, "channel used for thresholding")
	f.BoolVar(&opts.Invert, "invert", def.Threshold.Invert, "beans are darker than the background")
	f.IntVar(&opts.Open, "open", def.Threshold.OpenIterations, "morphological opening iterations")
	f.IntVar(&opts.Dilate, "dilate", def.Threshold.DilateIterations, "dilation iterations for sure background")
	f.Float64Var(&opts.Ratio, "ratio", def.Threshold.ForegroundRatio, "distance transform ratio for sure foreground")
	f.IntVar(&opts.Erode, "erode", def.Threshold.ErodeIterations, "final mask erosion iterations")
	f.Float64Var(&opts.Expansion, "expansion", def.Contour.Expansion, "contour expansion factor")
	f.IntVar(&opts.MinArea, "min-area", def.Contour.MinArea, "minimum bounding box area (exclusive)")
	f.IntVar(&opts.MaxArea, "max-area", def.Contour.MaxArea, "maximum bounding box area (exclusive)")
	f.IntVar(&opts.CropSize, "size", def.CropSize, "crop side in pixels")

	rootCmd.AddCommand(segmentCmd, cropCmd, countCmd)
}
