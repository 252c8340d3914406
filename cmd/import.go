package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rfinn/banksort"
	"github.com/rfinn/banksort/decider"
	"github.com/rfinn/banksort/ofx"
)

type importCmd struct {
	sourcesFile    string
	categoriesFile string
	batch          bool
	ai             bool
	autoCorrect    bool
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "reconcile the statement files of every source into the ledger"
}
func (*importCmd) Usage() string {
	return `bks import [-sources <file>] [-categories <file>] [-batch] [-ai] [-auto-correct]

  Reads the statement files of every declared source, reconciles the new
  records into the ledger under the action their rules resolve, then runs the
  category rules over the expenses. Records the rules cannot decide are
  resolved interactively, unless -batch skips them.

Usage Examples:
# Reconcile everything, prompting for ambiguous records.
$ bks import

# Never prompt; ambiguous records are skipped and reported.
$ bks import -batch

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sourcesFile, "sources", "sources.json", "Path to the source descriptor file.")
	f.StringVar(&c.categoriesFile, "categories", "categories.json", "Path to the category rule file.")
	f.BoolVar(&c.batch, "batch", false, "Never prompt. Records needing a decision are skipped.")
	f.BoolVar(&c.ai, "ai", false, "Ask a model to suggest categories before prompting.")
	f.BoolVar(&c.autoCorrect, "auto-correct", false, "Rewrite drifted metadata and invalid actions instead of only reporting them.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger := banksort.LoadLedger(*ledgerFile)

	sources, err := banksort.LoadSources(c.sourcesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	provider, err := c.provider(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var changes banksort.ChangeSet
	rc := &banksort.Reconciler{Ledger: ledger, Decider: provider, AutoCorrect: c.autoCorrect}
	for i := range sources {
		src := &sources[i]
		records, err := ofx.ReadDir(src.Dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}

		report, err := rc.Reconcile(src, records)
		changes.Merge(report.Changes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s: %d added, %d drifted, %d invalid, %d skipped\n",
			src.Name, report.Changes.Added, len(report.Drifted), len(report.InvalidAction), report.Skipped)
	}

	rules, err := banksort.LoadCategoryRules(c.categoriesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: skipping categorization: %v\n", err)
	} else {
		cl := &banksort.Classifier{Ledger: ledger, Rules: rules, Decider: provider}
		report, err := cl.Classify()
		changes.Merge(report.Changes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("categorized: %d modified, %d conflicts, %d skipped\n",
			report.Changes.Modified, len(report.Conflicts), report.Skipped)
	}

	return saveLedger(ledger, changes)
}

// provider builds the decision chain for this run: terminal prompts by
// default, nothing in batch mode, with an optional model suggester in front.
func (c *importCmd) provider(ctx context.Context) (banksort.DecisionProvider, error) {
	var p banksort.DecisionProvider = decider.NewTerminal(os.Stdin, os.Stdout)
	if c.batch {
		p = &decider.Scripted{}
	}
	if c.ai {
		s, err := decider.NewSuggester(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("cannot start the category suggester: %w", err)
		}
		p = s
	}
	return p, nil
}
