package banksort

import (
	"testing"

	"github.com/rfinn/banksort/date"
	"github.com/shopspring/decimal"
)

func TestBuckets(t *testing.T) {
	buckets := Buckets(date.New(2024, 1, 15), date.New(2024, 3, 2), date.Monthly)

	keys := make([]string, len(buckets))
	for i, b := range buckets {
		keys[i] = b.Key
	}
	want := []string{"2024-01", "2024-02", "2024-03"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	if got := Buckets(date.Date{}, date.New(2024, 3, 1), date.Monthly); got != nil {
		t.Errorf("zero earliest should yield no buckets, got %v", got)
	}
	if got := Buckets(date.New(2024, 3, 1), date.New(2024, 1, 1), date.Monthly); got != nil {
		t.Errorf("inverted span should yield no buckets, got %v", got)
	}
}

func TestBucketBoundary(t *testing.T) {
	b := Bucket{Key: "2024-03", Start: date.New(2024, 3, 1), End: date.New(2024, 4, 1)}

	if !b.Contains(date.New(2024, 3, 1)) {
		t.Error("start is included")
	}
	if !b.Contains(date.New(2024, 3, 31)) {
		t.Error("last day is included")
	}
	if b.Contains(date.New(2024, 4, 1)) {
		t.Error("end is excluded")
	}
}

func TestSumByBucketBoundary(t *testing.T) {
	l := NewLedger()
	l.Add(rec("IN", "2024-03-31 00:00:00", "-10.00"), testSource, Expense)
	l.Add(rec("OUT", "2024-04-01 00:00:00", "-20.00"), testSource, Expense)

	buckets := []Bucket{{Key: "2024-03", Start: date.New(2024, 3, 1), End: date.New(2024, 4, 1)}}
	totals := l.SumByBucket(buckets, Expense, nil)

	if !totals[0].Equal(decimal.RequireFromString("-10.00")) {
		t.Errorf("march total = %s, want -10 (entry on the exclusive end must not count)", totals[0])
	}
}

func TestSumByCategory(t *testing.T) {
	l := NewLedger()
	groceries := rec("WHOLE FOODS", "2024-03-10 00:00:00", "-75.00")
	rent := rec("LANDLORD", "2024-03-01 00:00:00", "-800.00")
	other := rec("MYSTERY", "2024-03-20 00:00:00", "-5.00")
	l.Add(groceries, testSource, Expense)
	l.Add(rent, testSource, Expense)
	l.Add(other, testSource, Expense)
	l.SetCategory(groceries, "groceries")
	l.SetCategory(rent, "rent")

	buckets := l.MonthlyBuckets(Expense)
	if len(buckets) != 1 {
		t.Fatalf("buckets = %v", buckets)
	}

	bd := l.SumByCategory(buckets, Expense, []string{"groceries", ElseCategory})

	if !bd.Totals["groceries"][0].Equal(decimal.RequireFromString("-75.00")) {
		t.Errorf("groceries = %s", bd.Totals["groceries"][0])
	}
	// rent is outside the requested set: it lands in else, together with the
	// uncategorized entry
	if !bd.Totals[ElseCategory][0].Equal(decimal.RequireFromString("-805.00")) {
		t.Errorf("else = %s", bd.Totals[ElseCategory][0])
	}
}

func TestSumByCategoryAllSeries(t *testing.T) {
	l := NewLedger()
	l.Add(rec("A", "2024-03-10 00:00:00", "-10.00"), testSource, Expense)
	l.Add(rec("B", "2024-03-12 00:00:00", "-20.00"), testSource, Expense)

	bd := l.SumByCategory(l.MonthlyBuckets(Expense), Expense, nil)

	if len(bd.Series) != 1 || bd.Series[0] != "all" {
		t.Fatalf("series = %v", bd.Series)
	}
	if !bd.Totals["all"][0].Equal(decimal.RequireFromString("-30.00")) {
		t.Errorf("all = %s", bd.Totals["all"][0])
	}
}

func TestSumByCategoryNoElseWithoutRequest(t *testing.T) {
	l := NewLedger()
	uncategorized := rec("MYSTERY", "2024-03-20 00:00:00", "-5.00")
	l.Add(uncategorized, testSource, Expense)

	bd := l.SumByCategory(l.MonthlyBuckets(Expense), Expense, []string{"groceries"})

	if !bd.Totals["groceries"][0].IsZero() {
		t.Errorf("groceries = %s, want 0", bd.Totals["groceries"][0])
	}
	if _, ok := bd.Totals[ElseCategory]; ok {
		t.Error("else series should only exist when requested")
	}
}

func TestReportableFlipsExpenseSign(t *testing.T) {
	l := NewLedger()
	l.Add(rec("A", "2024-03-10 00:00:00", "-42.50"), testSource, Expense)

	bd := l.SumByCategory(l.MonthlyBuckets(Expense), Expense, nil).Reportable()

	if !bd.Totals["all"][0].Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("reportable expense = %s, want +42.50", bd.Totals["all"][0])
	}
}

func TestReportableKeepsIncomeSign(t *testing.T) {
	l := NewLedger()
	l.Add(rec("EMPLOYER", "2024-03-01 00:00:00", "2500.00"), testSource, Income)

	bd := l.SumByCategory(l.MonthlyBuckets(Income), Income, nil).Reportable()

	if !bd.Totals["all"][0].Equal(decimal.RequireFromString("2500.00")) {
		t.Errorf("reportable income = %s, want 2500.00", bd.Totals["all"][0])
	}
}

func TestQuarterlyBuckets(t *testing.T) {
	buckets := Buckets(date.New(2024, 2, 10), date.New(2024, 7, 1), date.Quarterly)

	if len(buckets) != 3 {
		t.Fatalf("buckets = %v, want Q1..Q3", buckets)
	}
	if buckets[0].Key != "2024-Q1" || buckets[2].Key != "2024-Q3" {
		t.Errorf("keys = %s..%s", buckets[0].Key, buckets[2].Key)
	}
}
