package cmd

import (
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tableprof/internal/config"
	"github.com/KaramelBytes/tableprof/internal/report"
	"github.com/KaramelBytes/tableprof/internal/utils"
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Write the row/column/duplicate/null count report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSingleReport(func(c *cfgpkg.Global) string { return c.CountsFile }, report.WriteCounts)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Write the per-column summary statistics report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSingleReport(func(c *cfgpkg.Global) string { return c.StatsFile }, report.WriteStats)
	},
}

var outliersCmd = &cobra.Command{
	Use:   "outliers",
	Short: "Write the IQR outlier report for numeric columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSingleReport(func(c *cfgpkg.Global) string { return c.OutliersFile }, report.WriteOutliers)
	},
}

func ensureOutDir(dir string) error {
	return utils.EnsureDir(dir)
}

func init() {
	rootCmd.AddCommand(countsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(outliersCmd)
}
