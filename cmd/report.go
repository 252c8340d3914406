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

type reportCmd struct {
	action     string
	categories string
	period     string
	start      string
	end        string
}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "display a per-period breakdown of one action's entries"
}
func (*reportCmd) Usage() string {
	return `bks report [-action <action>] [-categories <a,b,...>] [-p <period>] [-s <start>] [-e <end>]

  Sums the entries of one action into period buckets and renders the result as
  a table, one row per period. With -categories, one column per requested
  category; the pseudo-category "else" collects everything outside the
  requested set. Expense totals are shown as positive spend figures.

Usage Examples:
# Monthly spend, one column for everything.
$ bks report

# Quarterly groceries and rent, plus the rest.
$ bks report -p quarter -categories groceries,rent,else

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.action, "action", "expense", "Action to report on (income, expense, move).")
	f.StringVar(&c.categories, "categories", "", "Comma-separated categories, one column each. Empty means a single column.")
	f.StringVar(&c.period, "p", "month", "Bucket granularity (month, quarter, year).")
	f.StringVar(&c.start, "s", "", "First date to cover (YYYY-MM-DD). Defaults to the oldest entry.")
	f.StringVar(&c.end, "e", "", "Last date to cover (YYYY-MM-DD). Defaults to the newest entry.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger := banksort.LoadLedger(*ledgerFile)

	action, err := banksort.ParseAction(c.action)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	stats := ledger.ActionStats(action)
	from, to := stats.Oldest, stats.Newest
	if c.start != "" {
		if from, err = date.Parse(c.start); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	if c.end != "" {
		if to, err = date.Parse(c.end); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	buckets := banksort.Buckets(from, to, period)
	if len(buckets) == 0 {
		fmt.Printf("No %s entries to report on.\n", action)
		return subcommands.ExitSuccess
	}

	var categories []string
	if c.categories != "" {
		categories = strings.Split(c.categories, ",")
	}

	bd := ledger.SumByCategory(buckets, action, categories).Reportable()
	printMarkdown(renderer.BreakdownMarkdown(bd, *currency))

	return subcommands.ExitSuccess
}
