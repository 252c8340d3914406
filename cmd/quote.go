package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rfinn/banksort"
)

type quoteCmd struct {
	url  string
	path string
}

func (*quoteCmd) Name() string { return "quote" }
func (*quoteCmd) Synopsis() string {
	return "fetch one quoted price from a JSON market endpoint"
}
func (*quoteCmd) Usage() string {
	return `bks quote -url <url> [-path <jsonpath>]

  Fetches the given URL and extracts the value at the JSONPath expression,
  typically the latest quoted price. Responses are cached on disk for the day.

Usage Examples:
$ bks quote -url "https://api.example.com/v1/ticker/ACME" -path "$.price"

`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "URL of the JSON quote endpoint.")
	f.StringVar(&c.path, "path", "$.price", "JSONPath expression selecting the quoted value.")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.url == "" {
		fmt.Fprintln(os.Stderr, "Error: -url is required")
		return subcommands.ExitUsageError
	}

	client := banksort.NewQuoteClient()
	value, err := banksort.FetchQuote(client, c.url, c.path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(value)

	return subcommands.ExitSuccess
}
