package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tableprof/internal/config"
)

var (
	// Global flags (wired to config at load time)
	cfgFile string
	debug   bool
	// Directory flags (override config if set)
	flagRawDir        string
	flagOutDir        string
	flagMultiplier    float64
	flagIncludeIDCols bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tableprof",
	Short: "tableprof: quick EDA profiling for directories of CSV tables",
	Long: `tableprof loads every CSV table in a raw-data directory and produces
repeatable first-pass profiles: row/column/null/duplicate counts, per-column
summary statistics, and IQR-based outlier reports, written as CSV files to a
processed-data directory.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tableprof/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagRawDir, "raw-dir", "", "directory of input CSV files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOutDir, "out-dir", "", "directory for report output (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagMultiplier, "multiplier", 0, "IQR multiplier for outlier fences (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagIncludeIDCols, "include-id-columns", false, "profile identifier-like numeric columns too")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("raw-dir") && flagRawDir != "" {
		cfg.RawDir = flagRawDir
	}
	if f.Changed("out-dir") && flagOutDir != "" {
		cfg.ProcessedDir = flagOutDir
	}
	if f.Changed("multiplier") && flagMultiplier > 0 {
		cfg.OutlierMultiplier = flagMultiplier
	}
	if f.Changed("include-id-columns") && flagIncludeIDCols {
		cfg.ExcludeIDColumns = false
	}
}

// ensureConfig returns the loaded config or a descriptive error for commands
// that cannot run without one.
func ensureConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}
	return cfg, nil
}
