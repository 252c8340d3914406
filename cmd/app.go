// Package cmd implements the CLI application to reconcile, categorize and
// report on bank statements.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/rfinn/banksort"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "workflow")
	c.Register(&categorizeCmd{}, "workflow")

	c.Register(&reportCmd{}, "reporting")
	c.Register(&transactionsCmd{}, "reporting")
	c.Register(&exportCmd{}, "reporting")

	c.Register(&quoteCmd{}, "market data")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file containing reconciled entries (JSONL format)")
var currency = flag.String("currency", "USD", "ISO 4217 currency code used to format amounts in reports")
var verbose = flag.Bool("v", false, "Verbose output: per-record warnings and decision logs")

// Setup applies the global flags. It must run after flag.Parse.
func Setup() {
	if !*verbose {
		log.SetOutput(io.Discard)
	}
}

// saveLedger persists the ledger when anything changed, reporting the change
// counts. An unchanged ledger is not written.
func saveLedger(l *banksort.Ledger, changes banksort.ChangeSet) subcommands.ExitStatus {
	if !changes.Dirty() {
		fmt.Println("No changes.")
		return subcommands.ExitSuccess
	}
	if err := banksort.SaveLedger(*ledgerFile, l, changes); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved ledger %s: %d added, %d modified\n", *ledgerFile, changes.Added, changes.Modified)
	return subcommands.ExitSuccess
}
