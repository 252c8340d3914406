package banksort

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLedgerMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.jsonl")
	l := LoadLedger(path)
	if l == nil || l.Len() != 0 {
		t.Errorf("missing file should load as an empty ledger, got %v", l)
	}
}

func TestLoadLedgerCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.jsonl")
	if err := os.WriteFile(path, []byte("not json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	l := LoadLedger(path)
	if l == nil || l.Len() != 0 {
		t.Errorf("corrupt file should load as an empty ledger, got %v", l)
	}
}

func TestSaveLedgerCleanWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")

	l := NewLedger()
	l.Add(rec("A", "2024-03-15 00:00:00", "-1"), testSource, Expense)

	if err := SaveLedger(path, l, ChangeSet{}); err != nil {
		t.Fatal(err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("a clean save should touch no file, found %d", len(files))
	}
}

func TestSaveLedgerWritesPrimaryAndBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")

	l := NewLedger()
	r := rec("ACME CORP", "2024-03-15 00:00:00", "-42.50")
	changes := l.Add(r, testSource, Expense)

	now := time.Date(2024, 3, 16, 10, 30, 0, 0, time.UTC)
	if err := saveLedgerAt(path, l, changes, now); err != nil {
		t.Fatal(err)
	}

	backup := filepath.Join(dir, "ledger_240316103000.jsonl")
	for _, p := range []string{path, backup} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}

	got := LoadLedger(path)
	if got.Len() != 1 || !got.Contains(r) {
		t.Errorf("reloaded ledger does not hold the saved entry")
	}
}

func TestBackupPath(t *testing.T) {
	now := time.Date(2024, 3, 16, 10, 30, 0, 0, time.UTC)
	got := backupPath("data/ledger.jsonl", now)
	want := "data/ledger_240316103000.jsonl"
	if got != want {
		t.Errorf("backupPath = %q, want %q", got, want)
	}

	if got := backupPath("ledger", now); got != "ledger_240316103000" {
		t.Errorf("extensionless backupPath = %q", got)
	}
}
