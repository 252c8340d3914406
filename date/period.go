package date

import (
	"fmt"
	"strings"
)

// Period is the granularity used to bucket ledger entries for aggregation.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(p) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %s", p)
	}
}

// StartOf returns the first day of the period containing d.
func (p Period) StartOf(d Date) Date {
	switch p {
	case Monthly:
		return d.StartOfMonth()
	case Quarterly:
		return d.StartOfQuarter()
	case Yearly:
		return d.StartOfYear()
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Advance returns the start of the next period after the one containing d.
func (p Period) Advance(d Date) Date {
	switch p {
	case Monthly:
		return p.StartOf(d).AddMonths(1)
	case Quarterly:
		return p.StartOf(d).AddMonths(3)
	case Yearly:
		return p.StartOf(d).AddMonths(12)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Key returns the label identifying the period containing d, e.g. "2024-03"
// for a month, "2024-Q1" for a quarter, "2024" for a year.
func (p Period) Key(d Date) string {
	switch p {
	case Monthly:
		return d.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", d.Year(), (d.Month()-1)/3+1)
	case Yearly:
		return d.Format("2006")
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}
