package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestIngestCSVDropsBlankRows(t *testing.T) {
	csv := "age,vote\n34,yes\n,\n29,no\n"
	ds, err := IngestCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if got := ds.RowCount(); got != 2 {
		t.Fatalf("expected 2 rows after dropping blank row, got %d", got)
	}
	if got := ds.ColumnCount(); got != 2 {
		t.Fatalf("expected 2 columns, got %d", got)
	}
	for i := 0; i < ds.RowCount(); i++ {
		if len(ds.Row(i)) != ds.ColumnCount() {
			t.Fatalf("row %d width %d != %d", i, len(ds.Row(i)), ds.ColumnCount())
		}
	}
}

func TestIngestCSVTrimsHeaders(t *testing.T) {
	ds, err := IngestCSV(strings.NewReader(" age , vote \n34,yes\n"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	headers := ds.Headers()
	if headers[0] != "age" || headers[1] != "vote" {
		t.Fatalf("headers not trimmed: %q", headers)
	}
}

func TestIngestCSVPadsShortRows(t *testing.T) {
	ds, err := IngestCSV(strings.NewReader("a,b,c\n1,2\n"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	row := ds.Row(0)
	if len(row) != 3 || row[2] != "" {
		t.Fatalf("expected padded row, got %q", row)
	}
}

func TestIngestCSVErrors(t *testing.T) {
	cases := map[string]string{
		"empty input":    "",
		"blank header":   " , \n1,2\n",
		"unbalanced csv": "a,b\n\"unterminated\n",
	}
	for name, in := range cases {
		if _, err := IngestCSV(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else {
			var ie *IngestError
			if !errors.As(err, &ie) {
				t.Fatalf("%s: expected *IngestError, got %T", name, err)
			}
		}
	}
}

func TestIngestCSVRowLongerThanHeaderFails(t *testing.T) {
	if _, err := IngestCSV(strings.NewReader("a,b\n1,2,3\n")); err == nil {
		t.Fatal("expected error for row wider than header")
	}
}

func TestDatasetImmutable(t *testing.T) {
	ds, err := IngestCSV(strings.NewReader("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	ds.Headers()[0] = "mutated"
	ds.Row(0)[0] = "mutated"
	if ds.Headers()[0] != "a" || ds.Row(0)[0] != "1" {
		t.Fatal("accessor copies leaked internal state")
	}
}

func TestFingerprintStableAndContentSensitive(t *testing.T) {
	a, _ := IngestCSV(strings.NewReader("a,b\n1,2\n"))
	b, _ := IngestCSV(strings.NewReader("a,b\n1,2\n"))
	c, _ := IngestCSV(strings.NewReader("a,b\n1,3\n"))
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("same content, different fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatal("different content, same fingerprint")
	}
}

func TestNumericColumn(t *testing.T) {
	ds, err := IngestCSV(strings.NewReader("age,vote\n34,yes\n,\n29,no\n"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	vals, ok := ds.NumericColumn(0)
	if !ok || len(vals) != 2 {
		t.Fatalf("expected numeric age column with 2 values, got ok=%v vals=%v", ok, vals)
	}
	if _, ok := ds.NumericColumn(1); ok {
		t.Fatal("vote column should not be numeric")
	}
}

func TestIngestByName(t *testing.T) {
	ds, err := Ingest("votes.csv", strings.NewReader("a\n1\n"))
	if err != nil || ds.RowCount() != 1 {
		t.Fatalf("csv by name: ds=%v err=%v", ds, err)
	}
	if _, err := Ingest("votes.xlsx", strings.NewReader("not a workbook")); err == nil {
		t.Fatal("expected xlsx parse failure")
	}
}
