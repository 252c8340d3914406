package banksort

import (
	"github.com/rfinn/banksort/date"
	"github.com/shopspring/decimal"
)

// Bucket is a half-open time interval [Start, End) keyed by its period label.
type Bucket struct {
	Key   string
	Start date.Date
	End   date.Date
}

// Contains reports whether the date falls inside the bucket. The end is
// exclusive: an entry dated exactly on End belongs to the next bucket.
func (b Bucket) Contains(d date.Date) bool {
	return !d.Before(b.Start) && d.Before(b.End)
}

// Buckets walks from the period containing earliest up to and including the
// period containing latest, one period per step. The last bucket may extend
// past latest.
func Buckets(earliest, latest date.Date, p date.Period) []Bucket {
	var out []Bucket
	if earliest.IsZero() || latest.IsZero() || earliest.After(latest) {
		return out
	}
	for cur := p.StartOf(earliest); !cur.After(latest); cur = p.Advance(cur) {
		out = append(out, Bucket{Key: p.Key(cur), Start: cur, End: p.Advance(cur)})
	}
	return out
}

// MonthlyBuckets covers the full posted-date span of one action's entries
// with calendar-month buckets.
func (l *Ledger) MonthlyBuckets(action Action) []Bucket {
	stats := l.ActionStats(action)
	return Buckets(stats.Oldest, stats.Newest, date.Monthly)
}

// SumByBucket computes, for each bucket, the sum of raw amounts over exactly
// the entries satisfying date range, action, and (when non-empty) category
// filters. Totals are returned as stored: expense sums stay negative here.
func (l *Ledger) SumByBucket(buckets []Bucket, action Action, categories []string) []decimal.Decimal {
	totals := make([]decimal.Decimal, len(buckets))
	for i, b := range buckets {
		entries := l.Query(Filter{
			Range:      date.Range{From: b.Start, To: b.End},
			Action:     action,
			Categories: categories,
		})
		for _, e := range entries {
			totals[i] = totals[i].Add(e.Raw.Amount)
		}
	}
	return totals
}

// ElseCategory is the catch-all series name grouping entries whose category
// is not in the requested set. It is only active when the caller asks for it.
const ElseCategory = "else"

// Breakdown is a per-bucket, per-series sum of one action's entries, ready
// for a reporting adapter.
type Breakdown struct {
	Action  Action
	Buckets []Bucket
	Series  []string                     // series names, in presentation order
	Totals  map[string][]decimal.Decimal // per series, aligned with Buckets
}

// SumByCategory buckets sums by (period, category) pair for stacked
// reporting. With no categories requested, everything lands in a single
// "all" series. Requesting ElseCategory adds a catch-all series for entries
// whose category is outside the requested set.
func (l *Ledger) SumByCategory(buckets []Bucket, action Action, categories []string) *Breakdown {
	bd := &Breakdown{Action: action, Buckets: buckets, Totals: make(map[string][]decimal.Decimal)}

	if len(categories) == 0 {
		bd.Series = []string{"all"}
	} else {
		bd.Series = categories
	}
	for _, s := range bd.Series {
		bd.Totals[s] = make([]decimal.Decimal, len(buckets))
	}

	hasElse := false
	for _, c := range categories {
		if c == ElseCategory {
			hasElse = true
		}
	}

	for i, b := range buckets {
		entries := l.Query(Filter{
			Range:  date.Range{From: b.Start, To: b.End},
			Action: action,
		})
		for _, e := range entries {
			switch {
			case len(categories) == 0:
				bd.Totals["all"][i] = bd.Totals["all"][i].Add(e.Raw.Amount)
			case contains(categories, e.Category):
				bd.Totals[e.Category][i] = bd.Totals[e.Category][i].Add(e.Raw.Amount)
			case hasElse:
				bd.Totals[ElseCategory][i] = bd.Totals[ElseCategory][i].Add(e.Raw.Amount)
			}
		}
	}
	return bd
}

// Reportable returns the breakdown with the reporting sign convention
// applied: expense totals are flipped to positive spend figures, income and
// move totals are left as stored.
func (bd *Breakdown) Reportable() *Breakdown {
	if bd.Action != Expense {
		return bd
	}
	out := &Breakdown{Action: bd.Action, Buckets: bd.Buckets, Series: bd.Series, Totals: make(map[string][]decimal.Decimal)}
	for s, totals := range bd.Totals {
		flipped := make([]decimal.Decimal, len(totals))
		for i, t := range totals {
			flipped[i] = t.Neg()
		}
		out.Totals[s] = flipped
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
