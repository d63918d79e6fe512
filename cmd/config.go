package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tableprof/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tableprof configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("raw_dir: %s\n", cfg.RawDir)
		fmt.Printf("processed_dir: %s\n", cfg.ProcessedDir)
		fmt.Printf("counts_file: %s\n", cfg.CountsFile)
		fmt.Printf("stats_file: %s\n", cfg.StatsFile)
		fmt.Printf("outliers_file: %s\n", cfg.OutliersFile)
		fmt.Printf("manifest_file: %s\n", cfg.ManifestFile)
		fmt.Printf("missing_markers: %s\n", strings.Join(cfg.MissingMarkers, ", "))
		fmt.Printf("numeric_ratio: %.2f\n", cfg.NumericRatio)
		fmt.Printf("outlier_multiplier: %.2f\n", cfg.OutlierMultiplier)
		fmt.Printf("exclude_id_columns: %t\n", cfg.ExcludeIDColumns)
		fmt.Printf("serve_addr: %s\n", cfg.ServeAddr)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "raw_dir":
			cfg.RawDir = val
		case "processed_dir":
			cfg.ProcessedDir = val
		case "counts_file":
			cfg.CountsFile = val
		case "stats_file":
			cfg.StatsFile = val
		case "outliers_file":
			cfg.OutliersFile = val
		case "manifest_file":
			cfg.ManifestFile = val
		case "missing_markers":
			cfg.MissingMarkers = strings.Split(val, ",")
		case "numeric_ratio":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f > 1 {
				return fmt.Errorf("invalid numeric_ratio: %s (want a number in (0, 1])", val)
			}
			cfg.NumericRatio = f
		case "outlier_multiplier":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid outlier_multiplier: %s (want a positive number)", val)
			}
			cfg.OutlierMultiplier = f
		case "exclude_id_columns":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid exclude_id_columns: %s (want true or false)", val)
			}
			cfg.ExcludeIDColumns = b
		case "serve_addr":
			cfg.ServeAddr = val
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
