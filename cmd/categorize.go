package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rfinn/banksort"
	"github.com/rfinn/banksort/decider"
)

type categorizeCmd struct {
	categoriesFile string
	redo           bool
	clear          string
	batch          bool
	ai             bool
}

func (*categorizeCmd) Name() string { return "categorize" }
func (*categorizeCmd) Synopsis() string {
	return "run the category rules over the ledger's expense entries"
}
func (*categorizeCmd) Usage() string {
	return `bks categorize [-categories <file>] [-redo] [-clear <category>] [-batch] [-ai]

  Assigns a category to every uncategorized expense entry, asking for the
  ambiguous ones. With -redo, already-categorized entries are re-derived from
  the current rules instead of only being checked for conflicts. With -clear,
  the given category is first removed from every entry carrying it, and those
  entries are re-derived in the same run.

`
}

func (c *categorizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.categoriesFile, "categories", "categories.json", "Path to the category rule file.")
	f.BoolVar(&c.redo, "redo", false, "Re-derive the category of already-categorized entries.")
	f.StringVar(&c.clear, "clear", "", "Remove this category from every entry carrying it before classifying.")
	f.BoolVar(&c.batch, "batch", false, "Never prompt. Entries needing a decision are skipped.")
	f.BoolVar(&c.ai, "ai", false, "Ask a model to suggest categories before prompting.")
}

func (c *categorizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger := banksort.LoadLedger(*ledgerFile)

	var changes banksort.ChangeSet
	if c.clear != "" {
		// cleared entries are uncategorized again and re-derived below
		cleared := ledger.RemoveCategory(c.clear)
		fmt.Printf("cleared category %q from %d entries\n", c.clear, cleared.Modified)
		changes.Merge(cleared)
	}

	rules, err := banksort.LoadCategoryRules(c.categoriesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var provider banksort.DecisionProvider = decider.NewTerminal(os.Stdin, os.Stdout)
	if c.batch {
		provider = &decider.Scripted{}
	}
	if c.ai {
		s, err := decider.NewSuggester(ctx, provider)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot start the category suggester: %v\n", err)
			return subcommands.ExitFailure
		}
		provider = s
	}

	cl := &banksort.Classifier{Ledger: ledger, Rules: rules, Decider: provider, Recategorize: c.redo}
	report, err := cl.Classify()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for _, conflict := range report.Conflicts {
		fmt.Printf("conflict: stored %q, rules now say %q: %s\n",
			conflict.Entry.Category, conflict.Suggested, conflict.Entry.Summary())
	}
	fmt.Printf("categorized: %d modified, %d conflicts, %d skipped\n",
		report.Changes.Modified, len(report.Conflicts), report.Skipped)

	changes.Merge(report.Changes)
	return saveLedger(ledger, changes)
}
