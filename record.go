package banksort

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/rfinn/banksort/date"
	"github.com/shopspring/decimal"
)

// Record field names as they appear in rule files and in the persisted ledger.
const (
	FieldPayee    = "payee"
	FieldType     = "type"
	FieldDate     = "date"
	FieldUserDate = "user_date"
	FieldAmount   = "amount"
	FieldID       = "id"
	FieldMemo     = "memo"
	FieldSIC      = "sic"
	FieldMCC      = "mcc"
	FieldCheckNum = "checknum"
)

// RecordFields lists every raw record field, in persisted order.
var RecordFields = []string{
	FieldPayee, FieldType, FieldDate, FieldUserDate, FieldAmount,
	FieldID, FieldMemo, FieldSIC, FieldMCC, FieldCheckNum,
}

// RawRecord is the immutable, source-derived field set identifying one
// statement transaction. Every field is a string except Amount.
type RawRecord struct {
	Payee    string
	Type     string
	Date     string // statement timestamp, see date.TimestampFormat
	UserDate string
	Amount   decimal.Decimal
	ID       string
	Memo     string
	SIC      string
	MCC      string
	CheckNum string
}

// Field returns the string value of the named field, and whether the name is
// a known field. Amount is rendered with its canonical decimal formatting.
func (r RawRecord) Field(name string) (string, bool) {
	switch name {
	case FieldPayee:
		return r.Payee, true
	case FieldType:
		return r.Type, true
	case FieldDate:
		return r.Date, true
	case FieldUserDate:
		return r.UserDate, true
	case FieldAmount:
		return r.Amount.String(), true
	case FieldID:
		return r.ID, true
	case FieldMemo:
		return r.Memo, true
	case FieldSIC:
		return r.SIC, true
	case FieldMCC:
		return r.MCC, true
	case FieldCheckNum:
		return r.CheckNum, true
	default:
		return "", false
	}
}

// Equal reports whether every field of both records matches exactly.
func (r RawRecord) Equal(o RawRecord) bool {
	return r.Payee == o.Payee &&
		r.Type == o.Type &&
		r.Date == o.Date &&
		r.UserDate == o.UserDate &&
		r.Amount.Equal(o.Amount) &&
		r.ID == o.ID &&
		r.Memo == o.Memo &&
		r.SIC == o.SIC &&
		r.MCC == o.MCC &&
		r.CheckNum == o.CheckNum
}

// Fingerprint returns a stable identity for the record, derived from its
// normalized field values: surrounding whitespace is trimmed and the amount
// is rendered canonically, so a source that re-serializes a field slightly
// differently across exports still maps to the same ledger entry.
// First occurrence wins; later records with the same fingerprint are no-ops.
func (r RawRecord) Fingerprint() string {
	h := sha1.New()
	for _, name := range RecordFields {
		v, _ := r.Field(name)
		fmt.Fprintf(h, "%s=%s\n", name, strings.TrimSpace(v))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// When returns the day the transaction was posted.
func (r RawRecord) When() (date.Date, error) {
	return date.ParseTimestamp(r.Date)
}

// Summary returns the one-line human description used when an operator is
// asked to decide on a record.
func (r RawRecord) Summary() string {
	return fmt.Sprintf("type: %s | payee: %s | date: %s | amount: %s",
		r.Type, r.Payee, r.Date, r.Amount.String())
}

// MarshalJSON writes the record with its fields in canonical order.
func (r RawRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("payee", r.Payee)
	w.Append("type", r.Type)
	w.Append("date", r.Date)
	w.Append("user_date", r.UserDate)
	w.Append("amount", r.Amount)
	w.Append("id", r.ID)
	w.Append("memo", r.Memo)
	w.Append("sic", r.SIC)
	w.Append("mcc", r.MCC)
	w.Append("checknum", r.CheckNum)
	return w.MarshalJSON()
}
