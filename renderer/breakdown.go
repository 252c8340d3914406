package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/rfinn/banksort"
	"github.com/shopspring/decimal"
)

// BreakdownMarkdown renders a per-period, per-series breakdown as a markdown
// table, one row per period and a final Total row.
func BreakdownMarkdown(bd *banksort.Breakdown, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s breakdown", titled(string(bd.Action))))

	align := []md.TableAlignment{md.AlignLeft}
	header := []string{"Period"}
	for _, s := range bd.Series {
		align = append(align, md.AlignRight)
		header = append(header, s)
	}

	table := md.TableSet{
		Alignment: align,
		Header:    header,
		Rows:      [][]string{},
	}

	grand := make([]decimal.Decimal, len(bd.Series))
	for i, b := range bd.Buckets {
		row := []string{b.Key}
		for j, s := range bd.Series {
			v := bd.Totals[s][i]
			grand[j] = grand[j].Add(v)
			row = append(row, NewMoney(v, currency).String())
		}
		table.Rows = append(table.Rows, row)
	}

	totalRow := []string{"Total"}
	for j := range bd.Series {
		totalRow = append(totalRow, NewMoney(grand[j], currency).String())
	}
	table.Rows = append(table.Rows, totalRow)

	doc.Table(table)
	return doc.String()
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
