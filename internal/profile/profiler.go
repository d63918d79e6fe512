// Package profile computes structural and statistical summaries over an
// in-memory tabular dataset: row/column/null/duplicate counts, per-column
// descriptive statistics, and IQR-based outlier flags. All operations are
// pure functions of the dataset; nothing here touches storage.
package profile

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/tableprof/internal/dataset"
)

// Options controls profiling behavior.
type Options struct {
	// OutlierMultiplier scales the IQR when computing outlier fences.
	OutlierMultiplier float64
	// ExcludeIDColumns skips identifier-like numeric columns in the
	// statistics and outlier reports.
	ExcludeIDColumns bool
}

// DefaultOptions returns the conventional 1.5*IQR rule with ID exclusion on.
func DefaultOptions() Options {
	return Options{OutlierMultiplier: 1.5, ExcludeIDColumns: true}
}

// ColumnSummary holds per-column descriptive statistics. For text columns
// only the counts are populated; every numeric statistic is undefined.
type ColumnSummary struct {
	Name    string       `json:"name"`
	Kind    dataset.Kind `json:"kind"`
	NonNull int          `json:"non_null"`
	Nulls   int          `json:"nulls"`

	Min            Stat `json:"min"`
	Max            Stat `json:"max"`
	Mean           Stat `json:"mean"`
	Median         Stat `json:"median"`
	Std            Stat `json:"std"`
	VariationCoeff Stat `json:"variation_coeff"`
}

// DuplicateReport counts rows that are identical across all columns.
// The first occurrence of a row is the original; later identical rows are
// the duplicates, listed in DuplicateRows by index.
type DuplicateReport struct {
	Rows          int   `json:"rows"`
	Unique        int   `json:"unique"`
	Duplicate     int   `json:"duplicate"`
	DuplicateRows []int `json:"duplicate_rows,omitempty"`
}

// OutlierReport flags values outside the IQR fences for one numeric column.
type OutlierReport struct {
	Column     string    `json:"column"`
	Lower      float64   `json:"lower"`
	Upper      float64   `json:"upper"`
	Multiplier float64   `json:"multiplier"`
	Rows       []int     `json:"rows,omitempty"`
	Values     []float64 `json:"values,omitempty"`
}

// Result bundles one full profiling pass over a dataset.
type Result struct {
	Table         string                   `json:"table"`
	Rows          int                      `json:"rows"`
	Cols          int                      `json:"cols"`
	ColumnOrder   []string                 `json:"column_order"`
	TotalNulls    int                      `json:"total_nulls"`
	NullCounts    map[string]int           `json:"null_counts"`
	Duplicates    DuplicateReport          `json:"duplicates"`
	Summaries     map[string]ColumnSummary `json:"summaries"`
	Outliers      []OutlierReport          `json:"outliers"`
	UniqueColumns []string                 `json:"unique_columns"`
}

// RowColumnCounts returns the dataset's row and column counts. A dataset with
// zero columns fails with dataset.ErrEmptyDataset.
func RowColumnCounts(ds *dataset.Dataset) (rows, cols int, err error) {
	if ds.Cols() == 0 {
		return 0, 0, dataset.ErrEmptyDataset
	}
	return ds.Rows(), ds.Cols(), nil
}

// NullCounts returns the missing-cell count per column.
func NullCounts(ds *dataset.Dataset) map[string]int {
	out := make(map[string]int, ds.Cols())
	for _, col := range ds.Columns() {
		out[col.Name] = col.Len() - col.NonNull()
	}
	return out
}

const (
	cellSep     = "\x1f"
	missingCell = "\x00"
)

func rowKey(ds *dataset.Dataset, row int, b *strings.Builder) string {
	b.Reset()
	for i, col := range ds.Columns() {
		if i > 0 {
			b.WriteString(cellSep)
		}
		if col.IsMissing(row) {
			// missing compares equal to missing
			b.WriteString(missingCell)
			continue
		}
		switch col.Kind {
		case dataset.KindNumeric:
			b.WriteString(strconv.FormatFloat(col.Float(row), 'g', -1, 64))
		default:
			b.WriteString(col.Text(row))
		}
	}
	return b.String()
}

// Duplicates reports rows identical across all columns.
func Duplicates(ds *dataset.Dataset) DuplicateReport {
	rep := DuplicateReport{Rows: ds.Rows()}
	seen := make(map[string]struct{}, ds.Rows())
	var b strings.Builder
	for row := 0; row < ds.Rows(); row++ {
		key := rowKey(ds, row, &b)
		if _, ok := seen[key]; ok {
			rep.Duplicate++
			rep.DuplicateRows = append(rep.DuplicateRows, row)
			continue
		}
		seen[key] = struct{}{}
		rep.Unique++
	}
	return rep
}

// UniqueColumns returns columns that uniquely identify every row by
// themselves: no missing cells and all values distinct. Multi-column
// composite keys are not attempted.
func UniqueColumns(ds *dataset.Dataset) []string {
	var out []string
	n := ds.Rows()
	for _, col := range ds.Columns() {
		if col.NonNull() != n || n == 0 {
			continue
		}
		distinct := make(map[string]struct{}, n)
		unique := true
		for i := 0; i < n; i++ {
			var key string
			if col.Kind == dataset.KindNumeric {
				key = strconv.FormatFloat(col.Float(i), 'g', -1, 64)
			} else {
				key = col.Text(i)
			}
			if _, ok := distinct[key]; ok {
				unique = false
				break
			}
			distinct[key] = struct{}{}
		}
		if unique {
			out = append(out, col.Name)
		}
	}
	return out
}

var idNameKeywords = []string{"id", "key", "identifier", "uuid", "guid"}

// IsIDColumn applies the identifier heuristic to a numeric column: an ID-ish
// name, or nearly all-unique values covering most rows.
func IsIDColumn(col *dataset.Column) bool {
	name := strings.ToLower(col.Name)
	for _, kw := range idNameKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	vals := col.FloatValues()
	if len(vals) == 0 || col.Len() == 0 {
		return false
	}
	distinct := make(map[float64]struct{}, len(vals))
	for _, v := range vals {
		distinct[v] = struct{}{}
	}
	uniqueRatio := float64(len(distinct)) / float64(len(vals))
	coverage := float64(len(vals)) / float64(col.Len())
	return uniqueRatio >= 0.995 && coverage >= 0.80
}

func summarize(col *dataset.Column) ColumnSummary {
	s := ColumnSummary{
		Name:    col.Name,
		Kind:    col.Kind,
		NonNull: col.NonNull(),
		Nulls:   col.Len() - col.NonNull(),
	}
	if col.Kind != dataset.KindNumeric {
		return s
	}
	vals := col.FloatValues()
	if len(vals) == 0 {
		return s
	}
	lo, hi := minMax(vals)
	s.Min = Defined(lo)
	s.Max = Defined(hi)
	m := mean(vals)
	s.Mean = Defined(m)
	s.Median = Defined(Median(sortedCopy(vals)))
	s.Std = SampleStd(vals)
	if s.Std.Valid && m != 0 {
		s.VariationCoeff = Defined(s.Std.Value / m)
	}
	return s
}

// Summaries computes a ColumnSummary per column. With ExcludeIDColumns set,
// identifier-like numeric columns still report their counts but carry no
// numeric statistics.
func Summaries(ds *dataset.Dataset, opt Options) map[string]ColumnSummary {
	out := make(map[string]ColumnSummary, ds.Cols())
	for _, col := range ds.Columns() {
		if opt.ExcludeIDColumns && col.Kind == dataset.KindNumeric && IsIDColumn(col) {
			out[col.Name] = ColumnSummary{
				Name:    col.Name,
				Kind:    col.Kind,
				NonNull: col.NonNull(),
				Nulls:   col.Len() - col.NonNull(),
			}
			continue
		}
		out[col.Name] = summarize(col)
	}
	return out
}

// Outliers applies the IQR rule to one column. The second return is false
// when the column does not exist, is not numeric, or is excluded as an
// identifier; the caller skips it and continues. A zero IQR (constant
// column) yields a report with no flagged rows.
func Outliers(ds *dataset.Dataset, column string, opt Options) (OutlierReport, bool) {
	col, ok := ds.Column(column)
	if !ok || col.Kind != dataset.KindNumeric {
		return OutlierReport{}, false
	}
	if opt.ExcludeIDColumns && IsIDColumn(col) {
		return OutlierReport{}, false
	}
	k := opt.OutlierMultiplier
	if k <= 0 {
		k = 1.5
	}
	rep := OutlierReport{Column: column, Multiplier: k}
	vals := col.FloatValues()
	if len(vals) == 0 {
		return rep, true
	}
	sorted := sortedCopy(vals)
	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	rep.Lower = q1 - k*iqr
	rep.Upper = q3 + k*iqr
	if iqr == 0 {
		// constant column: zero-width fences flag nothing
		return rep, true
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		v := col.Float(i)
		if v < rep.Lower || v > rep.Upper {
			rep.Rows = append(rep.Rows, i)
			rep.Values = append(rep.Values, v)
		}
	}
	return rep, true
}

// Profile runs the full pass: counts, duplicates, summaries, and outlier
// detection for every numeric column, in column order.
func Profile(ds *dataset.Dataset, opt Options) (*Result, error) {
	rows, cols, err := RowColumnCounts(ds)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Table:         ds.Name,
		Rows:          rows,
		Cols:          cols,
		NullCounts:    NullCounts(ds),
		Duplicates:    Duplicates(ds),
		Summaries:     Summaries(ds, opt),
		UniqueColumns: UniqueColumns(ds),
	}
	for _, n := range res.NullCounts {
		res.TotalNulls += n
	}
	for _, col := range ds.Columns() {
		res.ColumnOrder = append(res.ColumnOrder, col.Name)
	}
	for _, col := range ds.Columns() {
		if rep, ok := Outliers(ds, col.Name, opt); ok {
			res.Outliers = append(res.Outliers, rep)
		}
	}
	return res, nil
}
