package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rfinn/banksort"
	"github.com/rfinn/banksort/date"
	"github.com/rfinn/banksort/renderer"
)

type transactionsCmd struct {
	action     string
	categories string
	start      string
	end        string
}

func (*transactionsCmd) Name() string { return "transactions" }
func (*transactionsCmd) Synopsis() string {
	return "list the ledger entries matching the given filters"
}
func (*transactionsCmd) Usage() string {
	return `bks transactions [-action <action>] [-categories <a,b,...>] [-s <start>] [-e <end>]

  Lists the reconciled entries matching every given filter, in posted-date
  order. The end date is exclusive.

`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.action, "action", "", "Only entries with this action (income, expense, move).")
	f.StringVar(&c.categories, "categories", "", "Comma-separated categories. Empty means all.")
	f.StringVar(&c.start, "s", "", "First posted date to include (YYYY-MM-DD).")
	f.StringVar(&c.end, "e", "", "First posted date to exclude (YYYY-MM-DD).")
}

func (c *transactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger := banksort.LoadLedger(*ledgerFile)

	var filter banksort.Filter
	var err error
	if c.action != "" {
		if filter.Action, err = banksort.ParseAction(c.action); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	if c.categories != "" {
		filter.Categories = strings.Split(c.categories, ",")
	}
	if c.start != "" {
		if filter.Range.From, err = date.Parse(c.start); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	if c.end != "" {
		if filter.Range.To, err = date.Parse(c.end); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	entries := ledger.Query(filter)
	if len(entries) == 0 {
		fmt.Println("No matching entries.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.TransactionsMarkdown(entries, *currency))

	return subcommands.ExitSuccess
}
