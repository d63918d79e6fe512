package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tableprof/internal/dataset"
	"github.com/KaramelBytes/tableprof/internal/profile"
	"github.com/KaramelBytes/tableprof/internal/utils"
)

var countsHeader = []string{
	"Table Name", "Unique Column(s)", "Column Count", "Row Count",
	"Unique Rows Count", "Duplicate Rows Count", "Null Count", "Date Updated",
}

var statsHeader = []string{
	"Table Name", "Numeric Column(s)", "Minimum", "Maximum", "Median",
	"Average", "Standard Deviation", "Variation Coefficient", "Date Updated",
}

var outliersHeader = []string{
	"Table Name", "Numeric Column", "Average", "Standard Deviation",
	"list of outliers", "Date Updated",
}

// WriteCounts writes the row/column/duplicate/null count report.
func WriteCounts(r *Run, path string) error {
	rows := [][]string{countsHeader}
	for _, t := range r.Tables {
		unique := "None"
		if len(t.UniqueColumns) > 0 {
			unique = strings.Join(t.UniqueColumns, ", ")
		}
		rows = append(rows, []string{
			t.Table,
			unique,
			strconv.Itoa(t.Cols),
			strconv.Itoa(t.Rows),
			strconv.Itoa(t.Duplicates.Unique),
			strconv.Itoa(t.Duplicates.Duplicate),
			strconv.Itoa(t.TotalNulls),
			t.DateUpdated,
		})
	}
	return writeCSV(path, rows)
}

// WriteStats writes the per-column summary statistics report. Columns whose
// statistics are all undefined (text columns, excluded identifiers) are
// omitted; individual undefined statistics render as empty cells.
func WriteStats(r *Run, path string) error {
	rows := [][]string{statsHeader}
	for _, t := range r.Tables {
		for _, name := range t.ColumnOrder {
			s, ok := t.Summaries[name]
			if !ok || s.Kind != dataset.KindNumeric || !s.Min.Valid {
				continue
			}
			rows = append(rows, []string{
				t.Table,
				s.Name,
				formatStat(s.Min),
				formatStat(s.Max),
				formatStat(s.Median),
				formatStat(s.Mean),
				formatStat(s.Std),
				formatStat(s.VariationCoeff),
				t.DateUpdated,
			})
		}
	}
	return writeCSV(path, rows)
}

// WriteOutliers writes the per-column outlier report. Average and standard
// deviation are rounded to one decimal; an empty outlier set renders as
// "No Outliers".
func WriteOutliers(r *Run, path string) error {
	rows := [][]string{outliersHeader}
	for _, t := range r.Tables {
		for _, rep := range t.Outliers {
			s := t.Summaries[rep.Column]
			rows = append(rows, []string{
				t.Table,
				rep.Column,
				formatRounded(s.Mean),
				formatRounded(s.Std),
				formatOutliers(rep.Values),
				t.DateUpdated,
			})
		}
	}
	return writeCSV(path, rows)
}

// WriteManifest writes the full run as indented JSON.
func WriteManifest(r *Run, path string) error {
	b, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}

// LoadManifest reads a run manifest written by WriteManifest.
func LoadManifest(path string) (*Run, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var r Run
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &r, nil
}

// WriteAll writes the three CSV reports and the manifest into dir using the
// given file names.
func WriteAll(r *Run, dir, countsFile, statsFile, outliersFile, manifestFile string) error {
	if err := utils.EnsureDir(dir); err != nil {
		return fmt.Errorf("ensure processed dir: %w", err)
	}
	if err := WriteCounts(r, filepath.Join(dir, countsFile)); err != nil {
		return fmt.Errorf("write counts: %w", err)
	}
	if err := WriteStats(r, filepath.Join(dir, statsFile)); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	if err := WriteOutliers(r, filepath.Join(dir, outliersFile)); err != nil {
		return fmt.Errorf("write outliers: %w", err)
	}
	if err := WriteManifest(r, filepath.Join(dir, manifestFile)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func formatStat(s profile.Stat) string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(s.Value, 'g', -1, 64)
}

func formatRounded(s profile.Stat) string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(math.Round(s.Value*10)/10, 'f', -1, 64)
}

func formatOutliers(values []float64) string {
	if len(values) == 0 {
		return "No Outliers"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		if v == math.Trunc(v) {
			parts[i] = strconv.FormatInt(int64(v), 10)
		} else {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return strings.Join(parts, "; ")
}
