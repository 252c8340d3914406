// Package ofx is the statement-file adapter: it turns OFX/QFX/QBO bank
// exports into raw records the reconciliation workflow can consume.
//
// It deliberately stays thin. Beyond a header fixup for files whose OFX 1.x
// headers are glued onto one line, format quirks are the parser library's
// problem, not this system's.
package ofx

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/rfinn/banksort"
	"github.com/rfinn/banksort/date"
	"github.com/shopspring/decimal"
)

// headerTokens must each start on their own line for OFX 1.x parsing. Some
// banks export the whole header on one line.
var headerTokens = []string{
	"DATA:", "VERSION:", "SECURITY:", "ENCODING:", "CHARSET:",
	"COMPRESSION:", "OLDFILEUID:", "NEWFILEUID:", "<OFX>",
}

// FixHeader inserts a newline before each header token that does not already
// start on a new line. The input is not modified.
func FixHeader(in []byte) []byte {
	newline := []byte("\n")
	if bytes.Contains(in, []byte("\r\n")) {
		newline = []byte("\r\n")
	}

	fixed := in
	for _, token := range headerTokens {
		pos := bytes.Index(fixed, []byte(token))
		if pos <= 0 || fixed[pos-1] == '\n' {
			continue
		}
		var buf bytes.Buffer
		buf.Write(fixed[:pos])
		buf.Write(newline)
		buf.Write(fixed[pos:])
		fixed = buf.Bytes()
	}
	return fixed
}

// ParseFile reads one statement file and returns its transactions as raw
// records.
func ParseFile(path string) ([]banksort.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read statement file %q: %w", path, err)
	}

	resp, err := ofxgo.ParseResponse(bytes.NewReader(FixHeader(data)))
	if err != nil {
		return nil, fmt.Errorf("cannot parse statement file %q: %w", path, err)
	}

	var records []banksort.RawRecord
	for _, msg := range append(resp.Bank, resp.CreditCard...) {
		var trns []ofxgo.Transaction
		switch stmt := msg.(type) {
		case *ofxgo.StatementResponse:
			if stmt.BankTranList != nil {
				trns = stmt.BankTranList.Transactions
			}
		case *ofxgo.CCStatementResponse:
			if stmt.BankTranList != nil {
				trns = stmt.BankTranList.Transactions
			}
		default:
			continue
		}
		for _, tr := range trns {
			records = append(records, record(tr))
		}
	}
	return records, nil
}

func record(tr ofxgo.Transaction) banksort.RawRecord {
	amount, err := decimal.NewFromString(tr.TrnAmt.String())
	if err != nil {
		// ofxgo already validated the amount; an unparseable one here means
		// a bug worth seeing, not a record worth guessing at.
		log.Printf("warning: unparseable amount %q for %q, keeping zero", tr.TrnAmt.String(), tr.Name)
	}

	payee := string(tr.Name)
	if payee == "" && tr.Payee != nil {
		payee = string(tr.Payee.Name)
	}

	rec := banksort.RawRecord{
		Payee:    payee,
		Type:     strings.ToLower(tr.TrnType.String()),
		Date:     tr.DtPosted.Time.Format(date.TimestampFormat),
		Amount:   amount,
		ID:       string(tr.FiTID),
		Memo:     string(tr.Memo),
		CheckNum: string(tr.CheckNum),
	}
	if tr.DtUser != nil {
		rec.UserDate = tr.DtUser.Time.Format(date.TimestampFormat)
	}
	if tr.SIC != 0 {
		rec.SIC = strconv.FormatInt(int64(tr.SIC), 10)
	}
	return rec
}

// statementExts are the statement-file extensions a source directory may
// contain. Anything else is ignored.
var statementExts = map[string]bool{".ofx": true, ".qfx": true, ".qbo": true}

// ReadDir parses every statement file in dir and returns the concatenated
// records, in directory order.
func ReadDir(dir string) ([]banksort.RawRecord, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read statement directory %q: %w", dir, err)
	}

	var records []banksort.RawRecord
	for _, f := range files {
		if f.IsDir() || !statementExts[strings.ToLower(filepath.Ext(f.Name()))] {
			continue
		}
		path := filepath.Join(dir, f.Name())
		recs, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		log.Printf("parsed %d transaction(s) from %s", len(recs), path)
		records = append(records, recs...)
	}
	return records, nil
}
