// Package report assembles the results of a profiling run and persists them
// as CSV reports plus a JSON manifest under the processed directory.
package report

import (
	"time"

	"github.com/KaramelBytes/tableprof/internal/profile"
	"github.com/google/uuid"
)

// TableProfile is one table's profiling result plus source metadata.
type TableProfile struct {
	*profile.Result
	SourceFile string `json:"source_file"`
	// DateUpdated is the source file's last-modified time, ISO-8601 UTC.
	DateUpdated string `json:"date_updated"`
}

// Run is a complete profiling run over an input directory.
type Run struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Tables      []TableProfile `json:"tables"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// NewRun creates an empty run with a fresh id.
func NewRun() *Run {
	return &Run{ID: uuid.NewString(), GeneratedAt: time.Now().UTC()}
}

// AddTable appends one table's result. updatedAt is the source file's
// modification time.
func (r *Run) AddTable(res *profile.Result, sourceFile string, updatedAt time.Time) {
	r.Tables = append(r.Tables, TableProfile{
		Result:      res,
		SourceFile:  sourceFile,
		DateUpdated: updatedAt.UTC().Format(time.RFC3339),
	})
}

// AddWarning records a non-fatal problem (e.g. one unreadable file in a
// multi-file run).
func (r *Run) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Table returns the profile for the named table.
func (r *Run) Table(name string) (TableProfile, bool) {
	for _, t := range r.Tables {
		if t.Table == name {
			return t, true
		}
	}
	return TableProfile{}, false
}
