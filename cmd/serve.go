package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tableprof/internal/api"
	"github.com/KaramelBytes/tableprof/internal/report"
)

var serveRefresh bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest profiling run as a JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}

		manifest := filepath.Join(c.ProcessedDir, c.ManifestFile)
		var run *report.Run
		if !serveRefresh {
			if r, err := report.LoadManifest(manifest); err == nil {
				run = r
			} else if !errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "⚠ Warning: ignoring stale manifest: %v\n", err)
			}
		}
		if run == nil {
			run, err = buildRun(c)
			if err != nil {
				return err
			}
			if err := report.WriteAll(run, c.ProcessedDir, c.CountsFile, c.StatsFile, c.OutliersFile, c.ManifestFile); err != nil {
				return err
			}
		}

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Recover())
		if debug {
			e.Use(middleware.Logger())
		}
		h := api.NewHandler(run)
		h.RegisterRoutes(e)

		fmt.Printf("✓ Serving run %s (%d tables) on %s\n", run.ID, len(run.Tables), c.ServeAddr)
		return e.Start(c.ServeAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveRefresh, "refresh", false, "re-profile the raw directory instead of serving the saved manifest")
}
