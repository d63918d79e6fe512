// Package loader reads CSV files into dataset values, deciding each column's
// kind once at load time so the profiler can dispatch on the tag instead of
// inspecting cells.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tableprof/internal/config"
	"github.com/KaramelBytes/tableprof/internal/dataset"
	"github.com/KaramelBytes/tableprof/internal/utils"
)

// Options controls CSV reading and type inference.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects: tab for .tsv, comma otherwise.
	Delimiter rune
	// MissingMarkers are cell values treated as missing, case-insensitively.
	MissingMarkers []string
	// NumericRatio is the minimum share of non-missing cells that must parse
	// as numbers for a column to be numeric.
	NumericRatio float64
}

// DefaultOptions returns the conventional markers and a 0.9 numeric ratio.
func DefaultOptions() Options {
	return Options{
		MissingMarkers: config.DefaultMissingMarkers(),
		NumericRatio:   0.9,
	}
}

// ReadCSV loads one CSV file into a Dataset. The first record is the header;
// short rows are padded with missing cells.
func ReadCSV(path string, opt Options) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	name := utils.TableName(path)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dataset.New(name, nil)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)

	cells := make([][]string, ncol)
	rows := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			cells[j] = append(cells[j], v)
		}
		rows++
	}

	missing := markerSet(opt.MissingMarkers)
	ratio := opt.NumericRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.9
	}

	columns := make([]*dataset.Column, 0, ncol)
	for j := 0; j < ncol; j++ {
		colName := strings.TrimSpace(header[j])
		columns = append(columns, buildColumn(colName, cells[j], missing, ratio))
	}
	return dataset.New(name, columns)
}

func buildColumn(name string, raw []string, missing map[string]struct{}, ratio float64) *dataset.Column {
	nonMissing, numeric := 0, 0
	for _, v := range raw {
		if isMissing(v, missing) {
			continue
		}
		nonMissing++
		if _, ok := parseNumeric(v); ok {
			numeric++
		}
	}
	if nonMissing > 0 && float64(numeric)/float64(nonMissing) >= ratio {
		vals := make([]*float64, len(raw))
		for i, v := range raw {
			if isMissing(v, missing) {
				continue
			}
			if x, ok := parseNumeric(v); ok {
				val := x
				vals[i] = &val
			}
			// unparseable cell in a numeric column becomes missing
		}
		return dataset.NewNumericColumn(name, vals)
	}
	vals := make([]*string, len(raw))
	for i, v := range raw {
		if isMissing(v, missing) {
			continue
		}
		s := v
		vals[i] = &s
	}
	return dataset.NewTextColumn(name, vals)
}

func markerSet(markers []string) map[string]struct{} {
	out := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		out[strings.ToLower(m)] = struct{}{}
	}
	return out
}

func isMissing(v string, markers map[string]struct{}) bool {
	_, ok := markers[strings.ToLower(v)]
	return ok
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseNumeric parses a cell as a float, tolerating thousands separators and
// a trailing percent sign.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
