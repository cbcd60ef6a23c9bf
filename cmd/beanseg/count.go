package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"coffee-bot/internal/domain/entity"
	"coffee-bot/internal/infrastructure/storage"
)

var countCmd = &cobra.Command{
	Use:   "count <dir>",
	Short: "Tally bean labels stored in annotation files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := filepath.Glob(filepath.Join(args[0], "*.json"))
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no annotations in %s", args[0])
		}

		var records []entity.BeanRecord
		errs := make(map[string]error)
		for _, f := range files {
			ann, err := storage.ReadAnnotation(f)
			if err != nil {
				errs[filepath.Base(f)] = err
				continue
			}
			records = append(records, ann.Beans...)
		}

		counts := cfg.Labels.CountRecords(records)
		printCounts(counts, cfg.Labels, len(records))
		return reportFailures(len(errs), len(files), errs)
	},
}

func printCounts(counts entity.LabelCount, labels entity.LabelSet, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range labels.Names() {
		fmt.Fprintf(w, "%s\t%d\n", name, counts[name])
	}
	fmt.Fprintf(w, "%s\t%d\n", entity.UnclassifiedLabel, total-counts.Total())
	fmt.Fprintf(w, "total\t%d\n", total)
	_ = w.Flush()
}
