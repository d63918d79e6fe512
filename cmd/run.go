package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	cfgpkg "github.com/KaramelBytes/tableprof/internal/config"
	"github.com/KaramelBytes/tableprof/internal/loader"
	"github.com/KaramelBytes/tableprof/internal/profile"
	"github.com/KaramelBytes/tableprof/internal/report"
	"github.com/KaramelBytes/tableprof/internal/utils"
)

// buildRun profiles every CSV file in the raw directory. A file that fails to
// load or profile is skipped with a warning; the run carries on with the rest.
func buildRun(c *cfgpkg.Global) (*report.Run, error) {
	files, err := utils.ListCSVFiles(c.RawDir)
	if err != nil {
		return nil, err
	}
	lopt := loader.Options{
		MissingMarkers: c.MissingMarkers,
		NumericRatio:   c.NumericRatio,
	}
	popt := profile.Options{
		OutlierMultiplier: c.OutlierMultiplier,
		ExcludeIDColumns:  c.ExcludeIDColumns,
	}

	run := report.NewRun()
	for _, path := range files {
		ds, err := loader.ReadCSV(path, lopt)
		if err != nil {
			warnSkip(run, path, err)
			continue
		}
		res, err := profile.Profile(ds, popt)
		if err != nil {
			warnSkip(run, path, err)
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			warnSkip(run, path, err)
			continue
		}
		run.AddTable(res, filepath.Base(path), info.ModTime())
		if debug {
			fmt.Fprintf(os.Stderr, "profiled %s: %d rows, %d cols\n", ds.Name, res.Rows, res.Cols)
		}
	}
	return run, nil
}

func warnSkip(run *report.Run, path string, err error) {
	msg := fmt.Sprintf("skipped %s: %v", filepath.Base(path), err)
	fmt.Fprintln(os.Stderr, "⚠ Warning:", msg)
	run.AddWarning(msg)
}
