package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	app "coffee-bot/internal/application"
	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/infrastructure/storage"
)

var segmentCmd = &cobra.Command{
	Use:   "segment <dir>",
	Short: "Find beans on every image and write <stem>.json annotations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := listImages(args[0])
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no images in %s", args[0])
		}

		inputs := make([]app.BatchInput, len(paths))
		for i, p := range paths {
			inputs[i] = app.FileInput(p)
		}

		bar := newBar(len(paths), "Segmenting")
		batch.OnDone = func(string, error) { _ = bar.Add(1) }

		results, _ := batch.SegmentAll(cmd.Context(), inputs)
		_ = bar.Finish()

		errs := make(map[string]error)
		beans := 0
		for i, r := range results {
			if r.Err == nil {
				r.Err = storage.WriteAnnotation(storage.AnnotationPath(paths[i]), entity.NewAnnotation(filepath.Base(paths[i]), r.Result))
			}
			if r.Err != nil {
				errs[r.Name] = r.Err
				continue
			}
			beans += len(r.Result.Beans)
		}

		fmt.Printf("segmented %d of %d images, %d beans\n", len(results)-len(errs), len(results), beans)
		return reportFailures(len(errs), len(results), errs)
	},
}
