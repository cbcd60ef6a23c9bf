package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	app "coffee-bot/internal/application"
	"coffee-bot/internal/infrastructure/storage"
)

var cropOut string

var cropCmd = &cobra.Command{
	Use:   "crop <dir>",
	Short: "Cut annotated beans into square PNG crops named <stem>_<i>_<label>.png",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := listImages(args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cropOut, 0o755); err != nil {
			return err
		}

		errs := make(map[string]error)
		var inputs []app.CropInput
		for _, p := range paths {
			annPath := storage.AnnotationPath(p)
			if _, err := os.Stat(annPath); err != nil {
				continue
			}
			ann, err := storage.ReadAnnotation(annPath)
			if err != nil {
				errs[filepath.Base(p)] = err
				continue
			}
			inputs = append(inputs, app.CropInput{BatchInput: app.FileInput(p), Annotation: ann})
		}
		if len(inputs) == 0 && len(errs) == 0 {
			return fmt.Errorf("no annotated images in %s", args[0])
		}
		total := len(inputs) + len(errs)

		bar := newBar(len(inputs), "Cropping")
		batch.OnDone = func(string, error) { _ = bar.Add(1) }

		results, _ := batch.CropAll(cmd.Context(), inputs)
		_ = bar.Finish()

		written := 0
		for i, r := range results {
			if r.Err != nil {
				errs[r.Name] = r.Err
			}
			stem := strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
			for j, crop := range r.Crops {
				if crop.Pixels == nil {
					continue
				}
				name := cropFileName(stem, j, inputs[i].Annotation.Beans[j].Label)
				if err := imaging.Save(crop.Pixels, filepath.Join(cropOut, name)); err != nil {
					errs[r.Name] = multierr.Append(errs[r.Name], err)
					break
				}
				written++
			}
		}

		fmt.Printf("wrote %d crops to %s\n", written, cropOut)
		return reportFailures(len(errs), total, errs)
	},
}

// cropFileName имя файла вырезки <stem>_<i>_<label>.png; разделители пути
// в метке заменяются, чтобы файл не вышел за каталог --out.
func cropFileName(stem string, i int, label string) string {
	label = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return '_'
		}
		return r
	}, label)
	if label == "" || label == "." || label == ".." {
		label = "unlabeled"
	}
	return fmt.Sprintf("%s_%d_%s.png", stem, i, label)
}

func init() {
	cropCmd.Flags().StringVarP(&cropOut, "out", "o", "crops", "output directory")
}
