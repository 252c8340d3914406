package ofx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

const statement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>0000001
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301000000
<DTEND>20240331000000
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240315000000
<TRNAMT>-42.50
<FITID>TX-1
<NAME>ACME CORP
<MEMO>card purchase
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240301000000
<TRNAMT>2500.00
<FITID>TX-2
<NAME>EMPLOYER INC
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>2457.50
<DTASOF>20240331000000
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func TestFixHeader(t *testing.T) {
	glued := []byte("OFXHEADER:100DATA:OFXSGMLVERSION:102SECURITY:NONEENCODING:USASCIICHARSET:1252COMPRESSION:NONEOLDFILEUID:NONENEWFILEUID:NONE<OFX></OFX>")

	fixed := FixHeader(glued)
	for _, token := range []string{"DATA:", "VERSION:", "SECURITY:", "<OFX>"} {
		if !bytes.Contains(fixed, append([]byte("\n"), token...)) {
			t.Errorf("token %q does not start a line:\n%s", token, fixed)
		}
	}

	// a well-formed header is left alone
	clean := []byte(statement)
	if !bytes.Equal(FixHeader(clean), clean) {
		t.Error("FixHeader modified a well-formed file")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "march.ofx")
	if err := os.WriteFile(path, []byte(statement), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	r := records[0]
	if r.Payee != "ACME CORP" {
		t.Errorf("payee = %q", r.Payee)
	}
	if r.Type != "debit" {
		t.Errorf("type = %q", r.Type)
	}
	if r.Date != "2024-03-15 00:00:00" {
		t.Errorf("date = %q", r.Date)
	}
	if !r.Amount.Equal(decimal.RequireFromString("-42.50")) {
		t.Errorf("amount = %s", r.Amount)
	}
	if r.ID != "TX-1" {
		t.Errorf("id = %q", r.ID)
	}
	if r.Memo != "card purchase" {
		t.Errorf("memo = %q", r.Memo)
	}

	if records[1].Payee != "EMPLOYER INC" || records[1].Type != "credit" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "march.ofx"), []byte(statement), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a statement"), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2 (the .txt file is ignored)", len(records))
	}
}

func TestReadDirMissing(t *testing.T) {
	if _, err := ReadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
