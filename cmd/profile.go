package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tableprof/internal/config"
	"github.com/KaramelBytes/tableprof/internal/report"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile every CSV in the raw directory and write all reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		run, err := buildRun(c)
		if err != nil {
			return err
		}
		if err := report.WriteAll(run, c.ProcessedDir, c.CountsFile, c.StatsFile, c.OutliersFile, c.ManifestFile); err != nil {
			return err
		}
		fmt.Printf("✓ Profiled %d table(s), reports written to %s\n", len(run.Tables), c.ProcessedDir)
		return nil
	},
}

// writeSingleReport is shared by the counts/stats/outliers subcommands: build
// a run and write one report file into the processed directory.
func writeSingleReport(fileName func(*cfgpkg.Global) string, write func(*report.Run, string) error) error {
	c, err := ensureConfig()
	if err != nil {
		return err
	}
	run, err := buildRun(c)
	if err != nil {
		return err
	}
	if err := ensureOutDir(c.ProcessedDir); err != nil {
		return err
	}
	out := filepath.Join(c.ProcessedDir, fileName(c))
	if err := write(run, out); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %s\n", out)
	return nil
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
