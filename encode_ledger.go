package banksort

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jrawRecord is the decoding shape of a raw record. Amount accepts both a
// JSON number and a quoted string.
type jrawRecord struct {
	Payee    string          `json:"payee"`
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	UserDate string          `json:"user_date"`
	Amount   decimal.Decimal `json:"amount"`
	ID       string          `json:"id"`
	Memo     string          `json:"memo"`
	SIC      string          `json:"sic"`
	MCC      string          `json:"mcc"`
	CheckNum string          `json:"checknum"`
}

func (j jrawRecord) record() RawRecord {
	return RawRecord{
		Payee:    j.Payee,
		Type:     j.Type,
		Date:     j.Date,
		UserDate: j.UserDate,
		Amount:   j.Amount,
		ID:       j.ID,
		Memo:     j.Memo,
		SIC:      j.SIC,
		MCC:      j.MCC,
		CheckNum: j.CheckNum,
	}
}

// jentry is the decoding shape of one ledger line.
type jentry struct {
	Action   string     `json:"action"`
	Type     string     `json:"type"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Raw      jrawRecord `json:"raw"`
}

// DecodeLedger decodes entries from a stream of JSONL data, one entry object
// per line, and returns the reconstructed ledger. A duplicate raw record in
// the stream is an error: the store never holds two entries for one record.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var je jentry
		if err := json.Unmarshal(lineBytes, &je); err != nil {
			return nil, fmt.Errorf("cannot parse ledger line %d: %w", line, err)
		}

		e := &Entry{
			Action:     Action(je.Action),
			SourceType: je.Type,
			SourceName: je.Name,
			Category:   je.Category,
			Raw:        je.Raw.record(),
		}
		fp := e.Raw.Fingerprint()
		if _, dup := ledger.index[fp]; dup {
			return nil, fmt.Errorf("duplicate raw record on ledger line %d (payee %q)", line, e.Raw.Payee)
		}
		ledger.entries = append(ledger.entries, e)
		ledger.index[fp] = e
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	ledger.stableSort()
	return ledger, nil
}

// EncodeEntry marshals a single entry to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeEntry(w io.Writer, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// EncodeLedger orders entries by posted date and persists them to w in JSONL
// format. The sort is stable, so entries on the same day keep their relative
// order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, e := range ledger.entries {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}
