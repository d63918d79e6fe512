package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input/output locations
	RawDir       string `mapstructure:"raw_dir" yaml:"raw_dir"`
	ProcessedDir string `mapstructure:"processed_dir" yaml:"processed_dir"`

	// Output file names within ProcessedDir
	CountsFile   string `mapstructure:"counts_file" yaml:"counts_file"`
	StatsFile    string `mapstructure:"stats_file" yaml:"stats_file"`
	OutliersFile string `mapstructure:"outliers_file" yaml:"outliers_file"`
	ManifestFile string `mapstructure:"manifest_file" yaml:"manifest_file"`

	// Loader behavior
	MissingMarkers []string `mapstructure:"missing_markers" yaml:"missing_markers"`
	NumericRatio   float64  `mapstructure:"numeric_ratio" yaml:"numeric_ratio"`

	// Profiler behavior
	OutlierMultiplier float64 `mapstructure:"outlier_multiplier" yaml:"outlier_multiplier"`
	ExcludeIDColumns  bool    `mapstructure:"exclude_id_columns" yaml:"exclude_id_columns"`

	// Serve behavior
	ServeAddr string `mapstructure:"serve_addr" yaml:"serve_addr"`
}

// DefaultMissingMarkers are the cell values treated as the missing marker,
// compared case-insensitively.
func DefaultMissingMarkers() []string {
	return []string{"", "NA", "N/A", "null", "NaN"}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tableprof/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tableprof")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLEPROF")
	v.AutomaticEnv()

	// Defaults mirror the conventional data/raw -> data/processed layout.
	v.SetDefault("raw_dir", filepath.Join("data", "raw"))
	v.SetDefault("processed_dir", filepath.Join("data", "processed"))
	v.SetDefault("counts_file", "Column-RowCount-duplicate.csv")
	v.SetDefault("stats_file", "Summary_Statistics.csv")
	v.SetDefault("outliers_file", "Outliers.csv")
	v.SetDefault("manifest_file", "run.json")
	v.SetDefault("missing_markers", DefaultMissingMarkers())
	v.SetDefault("numeric_ratio", 0.9)
	v.SetDefault("outlier_multiplier", 1.5)
	v.SetDefault("exclude_id_columns", true)
	v.SetDefault("serve_addr", ":8080")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tableprof")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.NumericRatio <= 0 || c.NumericRatio > 1 {
		return nil, fmt.Errorf("numeric_ratio %v out of range (0, 1]", c.NumericRatio)
	}
	if c.OutlierMultiplier <= 0 {
		return nil, fmt.Errorf("outlier_multiplier %v must be positive", c.OutlierMultiplier)
	}
	return &c, nil
}
