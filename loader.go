package banksort

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backupTimeFormat is the timestamp appended to backup filenames.
const backupTimeFormat = "060102150405"

// LoadLedger reads the ledger persisted at path. A missing or unreadable file
// yields an empty ledger: a fresh start is a normal condition, but it is
// always surfaced with a warning rather than swallowed.
func LoadLedger(path string) *Ledger {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: ledger file %q does not exist, starting with an empty ledger", path)
		return NewLedger()
	}
	if err != nil {
		log.Printf("warning: cannot read ledger file %q (%v), starting with an empty ledger", path, err)
		return NewLedger()
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		log.Printf("warning: cannot decode ledger file %q (%v), starting with an empty ledger", path, err)
		return NewLedger()
	}
	return ledger
}

// SaveLedger persists the ledger to path, plus a timestamped backup copy
// alongside it, but only when the change set records any mutation. An
// unchanged ledger touches no file at all. Writes are whole-file
// replacements: a crash mid-run never corrupts the previous on-disk ledger.
func SaveLedger(path string, ledger *Ledger, changes ChangeSet) error {
	return saveLedgerAt(path, ledger, changes, time.Now())
}

func saveLedgerAt(path string, ledger *Ledger, changes ChangeSet, now time.Time) error {
	if !changes.Dirty() {
		return nil
	}

	if err := writeLedgerFile(path, ledger); err != nil {
		return err
	}
	if err := writeLedgerFile(backupPath(path, now), ledger); err != nil {
		return err
	}
	return nil
}

// backupPath appends a timestamp to the primary filename, before the
// extension: "transactions.jsonl" becomes "transactions_060102150405.jsonl".
func backupPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + now.Format(backupTimeFormat) + ext
}

func writeLedgerFile(path string, ledger *Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", path, err)
	}
	defer f.Close()

	if err := EncodeLedger(f, ledger); err != nil {
		return fmt.Errorf("error writing ledger file %q: %w", path, err)
	}
	return f.Close()
}
