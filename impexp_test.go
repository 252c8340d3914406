package banksort

import (
	"encoding/csv"
	"strings"
	"testing"
)

func TestExportCSV(t *testing.T) {
	l := NewLedger()
	r := rec("ACME CORP", "2024-03-15 00:00:00", "-42.50")
	l.Add(r, testSource, Expense)
	l.SetCategory(r, "groceries")

	sb := strings.Builder{}
	if err := ExportCSV(&sb, l.Query(Filter{})); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}

	header := rows[0]
	if header[0] != "meta.action" || header[3] != "meta.category" || header[4] != FieldPayee {
		t.Errorf("header = %v", header)
	}
	if len(header) != 4+len(RecordFields) {
		t.Errorf("header has %d columns, want %d", len(header), 4+len(RecordFields))
	}

	row := rows[1]
	if row[0] != "expense" || row[3] != "groceries" || row[4] != "ACME CORP" {
		t.Errorf("row = %v", row)
	}
	// the amount column carries the canonical decimal rendering
	if row[8] != "-42.5" {
		t.Errorf("amount column = %q", row[8])
	}
}

func TestExportCSVEmpty(t *testing.T) {
	sb := strings.Builder{}
	if err := ExportCSV(&sb, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Count(strings.TrimSpace(sb.String()), "\n") + 1
	if lines != 1 {
		t.Errorf("empty export should be header only, got %q", sb.String())
	}
}
