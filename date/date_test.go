package date

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{
			name: "midnight",
			in:   "2024-03-15 00:00:00",
			want: New(2024, time.March, 15),
		},
		{
			name: "time of day is discarded",
			in:   "2024-03-15 23:59:59",
			want: New(2024, time.March, 15),
		},
		{
			name:    "date only is rejected",
			in:      "2024-03-15",
			wantErr: true,
		},
		{
			name:    "garbage",
			in:      "not a date",
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		n    int
		want Date
	}{
		{"simple", New(2024, time.March, 1), 1, New(2024, time.April, 1)},
		{"year rollover", New(2024, time.December, 1), 1, New(2025, time.January, 1)},
		{"several months", New(2024, time.November, 1), 3, New(2025, time.February, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.AddMonths(tc.n); got != tc.want {
				t.Errorf("%v.AddMonths(%d) = %v, want %v", tc.in, tc.n, got, tc.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{From: New(2024, time.March, 1), To: New(2024, time.April, 1)}

	testCases := []struct {
		name string
		on   Date
		want bool
	}{
		{"start is included", New(2024, time.March, 1), true},
		{"middle", New(2024, time.March, 15), true},
		{"end is excluded", New(2024, time.April, 1), false},
		{"before start", New(2024, time.February, 29), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.on); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.on, got, tc.want)
			}
		})
	}

	open := Range{}
	if !open.Contains(New(1970, time.January, 1)) {
		t.Errorf("unbounded range should contain any date")
	}
}

func TestPeriodKey(t *testing.T) {
	d := New(2024, time.May, 17)
	if got := Monthly.Key(d); got != "2024-05" {
		t.Errorf("Monthly.Key() = %q, want %q", got, "2024-05")
	}
	if got := Quarterly.Key(d); got != "2024-Q2" {
		t.Errorf("Quarterly.Key() = %q, want %q", got, "2024-Q2")
	}
	if got := Yearly.Key(d); got != "2024" {
		t.Errorf("Yearly.Key() = %q, want %q", got, "2024")
	}
}

func TestPeriodAdvance(t *testing.T) {
	d := New(2024, time.May, 17)
	if got := Monthly.Advance(d); got != New(2024, time.June, 1) {
		t.Errorf("Monthly.Advance() = %v", got)
	}
	if got := Quarterly.Advance(d); got != New(2024, time.July, 1) {
		t.Errorf("Quarterly.Advance() = %v", got)
	}
	if got := Yearly.Advance(d); got != New(2025, time.January, 1) {
		t.Errorf("Yearly.Advance() = %v", got)
	}
}
