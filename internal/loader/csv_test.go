package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/tableprof/internal/dataset"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadCSVInfersKinds(t *testing.T) {
	path := writeFile(t, "orders.csv",
		"amount,region,note\n"+
			"1200,north,first\n"+
			"3,south,second\n"+
			"NA,south,third\n"+
			"4.5,north,\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.Name != "orders" {
		t.Fatalf("name = %q", ds.Name)
	}
	if ds.Rows() != 4 || ds.Cols() != 3 {
		t.Fatalf("rows=%d cols=%d", ds.Rows(), ds.Cols())
	}

	amount, _ := ds.Column("amount")
	if amount.Kind != dataset.KindNumeric {
		t.Fatalf("amount kind = %v", amount.Kind)
	}
	if !amount.IsMissing(2) {
		t.Fatal("NA cell must be missing")
	}
	if amount.Float(0) != 1200 {
		t.Fatalf("amount[0] = %v", amount.Float(0))
	}

	region, _ := ds.Column("region")
	if region.Kind != dataset.KindText {
		t.Fatalf("region kind = %v", region.Kind)
	}

	note, _ := ds.Column("note")
	if !note.IsMissing(3) {
		t.Fatal("empty cell must be missing")
	}
}

func TestReadCSVNumericRatio(t *testing.T) {
	// 3 of 4 non-missing cells numeric: 0.75 < 0.9 keeps the column text.
	path := writeFile(t, "mixed.csv",
		"v\n1\n2\nabc\n3\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	col, _ := ds.Column("v")
	if col.Kind != dataset.KindText {
		t.Fatalf("kind = %v, want text below numeric ratio", col.Kind)
	}

	opt := DefaultOptions()
	opt.NumericRatio = 0.7
	ds, err = ReadCSV(path, opt)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	col, _ = ds.Column("v")
	if col.Kind != dataset.KindNumeric {
		t.Fatalf("kind = %v, want numeric at lowered ratio", col.Kind)
	}
	// the unparseable cell turns into a missing cell
	if !col.IsMissing(2) {
		t.Fatal("unparseable cell should be missing in coerced column")
	}
}

func TestReadCSVSeparatorsAndPercent(t *testing.T) {
	path := writeFile(t, "fmt.csv",
		"price,share\n\"1,234.5\",12.5%\n\"2,000\",7%\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	price, _ := ds.Column("price")
	if price.Kind != dataset.KindNumeric || price.Float(0) != 1234.5 {
		t.Fatalf("price = %+v", price)
	}
	share, _ := ds.Column("share")
	if share.Kind != dataset.KindNumeric || share.Float(1) != 7 {
		t.Fatalf("share = %+v", share)
	}
}

func TestReadTSVSniffsTab(t *testing.T) {
	path := writeFile(t, "data.tsv", "a\tb\n1\tx\n2\ty\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.Cols() != 2 || ds.Rows() != 2 {
		t.Fatalf("rows=%d cols=%d", ds.Rows(), ds.Cols())
	}
}

func TestReadCSVShortRowsPadded(t *testing.T) {
	path := writeFile(t, "short.csv", "a,b\n1,x\n2\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	b, _ := ds.Column("b")
	if !b.IsMissing(1) {
		t.Fatal("padded cell must be missing")
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty_rows.csv", "a,b\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.Rows() != 0 || ds.Cols() != 2 {
		t.Fatalf("rows=%d cols=%d", ds.Rows(), ds.Cols())
	}
}
