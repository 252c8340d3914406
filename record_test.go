package banksort

import (
	"testing"

	"github.com/shopspring/decimal"
)

func rec(payee, ts, amount string) RawRecord {
	return RawRecord{
		Payee:  payee,
		Type:   "debit",
		Date:   ts,
		Amount: decimal.RequireFromString(amount),
	}
}

func TestFingerprintNormalization(t *testing.T) {
	base := rec("ACME CORP", "2024-03-15 00:00:00", "-42.50")

	tests := []struct {
		name string
		o    RawRecord
		same bool
	}{
		{"identical", rec("ACME CORP", "2024-03-15 00:00:00", "-42.50"), true},
		{"trailing whitespace", rec("ACME CORP  ", "2024-03-15 00:00:00", "-42.50"), true},
		{"leading whitespace", rec("  ACME CORP", "2024-03-15 00:00:00", "-42.50"), true},
		{"amount rendering", rec("ACME CORP", "2024-03-15 00:00:00", "-42.5000"), true},
		{"different payee", rec("ACME INC", "2024-03-15 00:00:00", "-42.50"), false},
		{"different amount", rec("ACME CORP", "2024-03-15 00:00:00", "-42.51"), false},
		{"different day", rec("ACME CORP", "2024-03-16 00:00:00", "-42.50"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.o.Fingerprint() == base.Fingerprint()
			if got != tc.same {
				t.Errorf("fingerprint equality = %v, want %v", got, tc.same)
			}
		})
	}
}

func TestFingerprintInnerWhitespaceSignificant(t *testing.T) {
	a := rec("ACME  CORP", "2024-03-15 00:00:00", "-42.50")
	b := rec("ACME CORP", "2024-03-15 00:00:00", "-42.50")
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("inner whitespace should be significant")
	}
}

func TestEqualIsExact(t *testing.T) {
	a := rec("ACME CORP", "2024-03-15 00:00:00", "-42.50")
	b := rec("ACME CORP ", "2024-03-15 00:00:00", "-42.50")
	if a.Equal(b) {
		t.Error("Equal should not trim whitespace")
	}
	if !a.Equal(a) {
		t.Error("a record should equal itself")
	}
}

func TestFieldLookup(t *testing.T) {
	r := rec("ACME CORP", "2024-03-15 00:00:00", "-42.50")

	if v, ok := r.Field(FieldAmount); !ok || v != "-42.5" {
		t.Errorf("Field(amount) = %q, %v", v, ok)
	}
	if _, ok := r.Field("nonsense"); ok {
		t.Error("unknown field should not resolve")
	}
}

func TestWhen(t *testing.T) {
	r := rec("ACME CORP", "2024-03-15 13:45:00", "-42.50")
	on, err := r.When()
	if err != nil {
		t.Fatal(err)
	}
	if on.String() != "2024-03-15" {
		t.Errorf("When() = %s, want 2024-03-15", on)
	}

	r.Date = "not a date"
	if _, err := r.When(); err == nil {
		t.Error("expected an error for an unparseable date")
	}
}
