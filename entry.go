package banksort

import "fmt"

// Action is the closed-set label describing the cash-flow direction of an
// entry.
type Action string

const (
	Income  Action = "income"
	Expense Action = "expense"
	Move    Action = "move"
)

// Valid reports whether the action belongs to the closed action set. Entries
// can carry an invalid action (for instance from a mistyped rule outcome);
// they are flagged during reconciliation, never corrected silently.
func (a Action) Valid() bool {
	switch a {
	case Income, Expense, Move:
		return true
	default:
		return false
	}
}

func (a Action) String() string { return string(a) }

// ParseAction parses a string into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown action %q (want income, expense or move)", s)
	}
	return a, nil
}

// Entry wraps one raw record with the metadata assigned by the system:
// the action resolved at import time, the source tag of the descriptor that
// produced it, and an optional category assigned later by the classifier.
type Entry struct {
	Action     Action
	SourceType string
	SourceName string
	Category   string
	Raw        RawRecord
}

// Summary returns the human description of the entry used in prompts.
func (e *Entry) Summary() string {
	return fmt.Sprintf("%s - %s", e.SourceName, e.Raw.Summary())
}

// MarshalJSON writes the entry with its fields in canonical order. Category
// is omitted while unassigned.
func (e *Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("action", e.Action)
	w.Append("type", e.SourceType)
	w.Append("name", e.SourceName)
	w.Optional("category", e.Category)
	w.Append("raw", e.Raw)
	return w.MarshalJSON()
}
