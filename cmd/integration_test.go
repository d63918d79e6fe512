package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/tableprof/internal/report"
)

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	if f := rootCmd.PersistentFlags(); f != nil {
		for _, name := range []string{"raw-dir", "out-dir", "multiplier", "include-id-columns"} {
			if fl := f.Lookup(name); fl != nil {
				fl.Changed = false
			}
		}
	}
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestCLI_ProfileWritesAllReports(t *testing.T) {
	home := setupHome(t)
	raw := filepath.Join(home, "raw")
	out := filepath.Join(home, "processed")

	writeFixture(t, raw, "orders.csv",
		"amount,region\n1,n\n2,n\n2,s\n3,s\n4,n\n5,s\n100,n\n")
	writeFixture(t, raw, "flat.csv",
		"v\n7\n7\n7\n7\n")
	// Non-CSV files are ignored by discovery.
	writeFixture(t, raw, "notes.txt", "not a table")

	runCmd(t, "profile", "--raw-dir", raw, "--out-dir", out)

	counts := readCSVFile(t, filepath.Join(out, "Column-RowCount-duplicate.csv"))
	if len(counts) != 3 {
		t.Fatalf("counts rows = %d: %v", len(counts), counts)
	}
	// Files are processed in name order: flat before orders.
	if counts[1][0] != "flat" || counts[2][0] != "orders" {
		t.Fatalf("table order = %v / %v", counts[1][0], counts[2][0])
	}
	if counts[2][3] != "7" {
		t.Fatalf("orders row count = %q", counts[2][3])
	}

	outliers := readCSVFile(t, filepath.Join(out, "Outliers.csv"))
	var flatRow, ordersRow []string
	for _, r := range outliers[1:] {
		switch r[0] {
		case "flat":
			flatRow = r
		case "orders":
			ordersRow = r
		}
	}
	if flatRow == nil || flatRow[4] != "No Outliers" {
		t.Fatalf("flat outliers = %v", flatRow)
	}
	if ordersRow == nil || ordersRow[4] != "100" {
		t.Fatalf("orders outliers = %v", ordersRow)
	}

	run, err := report.LoadManifest(filepath.Join(out, "run.json"))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if len(run.Tables) != 2 || run.ID == "" {
		t.Fatalf("manifest run = %+v", run)
	}
}

func TestCLI_SkipsUnreadableTableAndContinues(t *testing.T) {
	home := setupHome(t)
	raw := filepath.Join(home, "raw")
	out := filepath.Join(home, "processed")

	writeFixture(t, raw, "good.csv", "v\n1\n2\n3\n")
	// A CSV whose header is empty yields a zero-column dataset.
	writeFixture(t, raw, "bad.csv", "")

	runCmd(t, "profile", "--raw-dir", raw, "--out-dir", out)

	run, err := report.LoadManifest(filepath.Join(out, "run.json"))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if len(run.Tables) != 1 || run.Tables[0].Table != "good" {
		t.Fatalf("tables = %+v", run.Tables)
	}
	if len(run.Warnings) != 1 {
		t.Fatalf("warnings = %v", run.Warnings)
	}
}

func TestCLI_SingleReportCommands(t *testing.T) {
	home := setupHome(t)
	raw := filepath.Join(home, "raw")
	out := filepath.Join(home, "processed")
	writeFixture(t, raw, "t.csv", "v\n1\n2\n3\n4\n")

	runCmd(t, "counts", "--raw-dir", raw, "--out-dir", out)
	runCmd(t, "stats", "--raw-dir", raw, "--out-dir", out)
	runCmd(t, "outliers", "--raw-dir", raw, "--out-dir", out)

	for _, name := range []string{
		"Column-RowCount-duplicate.csv",
		"Summary_Statistics.csv",
		"Outliers.csv",
	} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("missing report %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "run.json")); err == nil {
		t.Fatal("single-report commands must not write the manifest")
	}
}

func TestCLI_MultiplierFlag(t *testing.T) {
	home := setupHome(t)
	raw := filepath.Join(home, "raw")
	out := filepath.Join(home, "processed")
	writeFixture(t, raw, "t.csv", "v\n1\n2\n2\n3\n4\n5\n12\n")

	runCmd(t, "outliers", "--raw-dir", raw, "--out-dir", out, "--multiplier", "3")
	rows := readCSVFile(t, filepath.Join(out, "Outliers.csv"))
	if len(rows) != 2 || rows[1][4] != "No Outliers" {
		t.Fatalf("k=3 rows = %v", rows)
	}

	runCmd(t, "outliers", "--raw-dir", raw, "--out-dir", out)
	rows = readCSVFile(t, filepath.Join(out, "Outliers.csv"))
	if len(rows) != 2 || rows[1][4] != "12" {
		t.Fatalf("k=1.5 rows = %v", rows)
	}
}
