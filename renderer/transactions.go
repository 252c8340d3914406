package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/rfinn/banksort"
)

// TransactionsMarkdown renders a list of ledger entries as a markdown table.
func TransactionsMarkdown(entries []*banksort.Entry, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Action", "Category", "Payee", "Amount"},
		Rows:   [][]string{},
	}
	for _, e := range entries {
		posted, err := e.Raw.When()
		day := e.Raw.Date
		if err == nil {
			day = posted.String()
		}
		table.Rows = append(table.Rows, []string{
			day,
			string(e.Action),
			e.Category,
			e.Raw.Payee,
			NewMoney(e.Raw.Amount, currency).SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
