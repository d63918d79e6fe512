package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a dataset has no columns to analyze.
var ErrEmptyDataset = errors.New("dataset has no columns")

// Kind is the inferred type of a column, decided once at load time.
type Kind int

const (
	KindNumeric Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its string form.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes the string form written by MarshalJSON.
func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "numeric":
		*k = KindNumeric
	case "text":
		*k = KindText
	default:
		return fmt.Errorf("unknown column kind %q", s)
	}
	return nil
}

// Column is a tagged variant: numeric columns hold Floats, text columns hold
// Texts. Missing marks absent cells in either representation; a missing cell's
// payload slot is the zero value and must not be read.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Texts   []string
	Missing []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.Missing) }

// IsMissing reports whether the cell at row i is the missing marker.
func (c *Column) IsMissing(i int) bool { return c.Missing[i] }

// Float returns the numeric value at row i. Only valid for numeric columns
// on non-missing cells.
func (c *Column) Float(i int) float64 { return c.Floats[i] }

// Text returns the text value at row i. Only valid for text columns on
// non-missing cells.
func (c *Column) Text(i int) string { return c.Texts[i] }

// NonNull returns the count of non-missing cells.
func (c *Column) NonNull() int {
	n := 0
	for _, m := range c.Missing {
		if !m {
			n++
		}
	}
	return n
}

// FloatValues returns the non-missing numeric values in row order.
// Returns nil for text columns.
func (c *Column) FloatValues() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Floats))
	for i, m := range c.Missing {
		if !m {
			out = append(out, c.Floats[i])
		}
	}
	return out
}

// NewNumericColumn builds a numeric column from optional values: a nil entry
// is a missing cell.
func NewNumericColumn(name string, values []*float64) *Column {
	c := &Column{
		Name:    name,
		Kind:    KindNumeric,
		Floats:  make([]float64, len(values)),
		Missing: make([]bool, len(values)),
	}
	for i, v := range values {
		if v == nil {
			c.Missing[i] = true
			continue
		}
		c.Floats[i] = *v
	}
	return c
}

// NewTextColumn builds a text column from optional values: a nil entry is a
// missing cell.
func NewTextColumn(name string, values []*string) *Column {
	c := &Column{
		Name:    name,
		Kind:    KindText,
		Texts:   make([]string, len(values)),
		Missing: make([]bool, len(values)),
	}
	for i, v := range values {
		if v == nil {
			c.Missing[i] = true
			continue
		}
		c.Texts[i] = *v
	}
	return c
}

// Dataset is an ordered set of named, equal-length columns. It is built once
// by a loader and treated as read-only by the profiler.
type Dataset struct {
	Name    string
	columns []*Column
	byName  map[string]int
}

// New assembles a dataset, validating that all columns share the same length
// and that names are unique.
func New(name string, columns []*Column) (*Dataset, error) {
	ds := &Dataset{Name: name, byName: make(map[string]int, len(columns))}
	for i, col := range columns {
		if _, dup := ds.byName[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if i > 0 && col.Len() != columns[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, col.Len(), columns[0].Len())
		}
		ds.byName[col.Name] = i
		ds.columns = append(ds.columns, col)
	}
	return ds, nil
}

// Rows returns the number of rows (zero for an empty dataset).
func (ds *Dataset) Rows() int {
	if len(ds.columns) == 0 {
		return 0
	}
	return ds.columns[0].Len()
}

// Cols returns the number of columns.
func (ds *Dataset) Cols() int { return len(ds.columns) }

// Columns returns the columns in declaration order.
func (ds *Dataset) Columns() []*Column { return ds.columns }

// Column looks a column up by name.
func (ds *Dataset) Column(name string) (*Column, bool) {
	i, ok := ds.byName[name]
	if !ok {
		return nil, false
	}
	return ds.columns[i], true
}
