package banksort

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Outcome is the right-hand side of a rule: an action or category label, or
// one of the sentinels below.
type Outcome string

const (
	// Ask defers the decision to the decision provider.
	Ask Outcome = "ask"
	// Skip leaves the record untouched for this run. It is never written in a
	// rule file; it exists so a provider can bail out of a prompt.
	Skip Outcome = "skip"
)

// Predicate matches one record field. For textual fields Pattern is a regular
// expression tested against the start of the field value. For the amount
// field of category rules, Pattern is a comparator expression "<op> <value>".
type Predicate struct {
	Field   string
	Pattern string
}

// Rule pairs a predicate set with an outcome. All predicates must hold for
// the rule to match.
type Rule struct {
	Predicates []Predicate
	Outcome    Outcome
}

// UnmarshalJSON decodes the wire shape of a rule: a two-element array of a
// predicate-set and an outcome, the predicate-set being a sequence of
// single-key objects {field: pattern}.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("rule must be a [checks, outcome] pair, got %d elements", len(pair))
	}

	var checks []map[string]string
	if err := json.Unmarshal(pair[0], &checks); err != nil {
		return fmt.Errorf("invalid rule checks: %w", err)
	}
	var outcome string
	if err := json.Unmarshal(pair[1], &outcome); err != nil {
		return fmt.Errorf("invalid rule outcome: %w", err)
	}

	r.Predicates = r.Predicates[:0]
	for _, check := range checks {
		if len(check) != 1 {
			return fmt.Errorf("each check must be a single {field: pattern} object, got %d keys", len(check))
		}
		for field, pattern := range check {
			r.Predicates = append(r.Predicates, Predicate{Field: field, Pattern: pattern})
		}
	}
	r.Outcome = Outcome(outcome)
	return nil
}

// RuleList is an ordered list of rules. Order is significant: the first rule
// whose predicates all pass wins and no later rule is considered.
type RuleList []Rule

// Verdict tells why a predicate passed or failed. Every failure collapses to
// "the rule does not match", but the distinction is kept for logs and tests.
type Verdict int

const (
	Matched Verdict = iota
	NoMatch
	FieldAbsent
	BadPattern
	BadComparator
)

func (v Verdict) String() string {
	switch v {
	case Matched:
		return "matched"
	case NoMatch:
		return "no-match"
	case FieldAbsent:
		return "field-absent"
	case BadPattern:
		return "bad-pattern"
	case BadComparator:
		return "bad-comparator"
	default:
		return "unknown"
	}
}

// PredicateResult is the verdict of one predicate during an evaluation.
type PredicateResult struct {
	Predicate Predicate
	Verdict   Verdict
}

// Evaluation is the outcome of evaluating a rule list against a record.
type Evaluation struct {
	Matched   bool
	Outcome   Outcome
	RuleIndex int               // index of the winning rule, -1 when none matched
	Results   []PredicateResult // verdicts of the predicates actually evaluated
}

// Evaluate runs the rules in order against the record and returns the first
// fully-matching rule's outcome. All predicates are textual.
func (rl RuleList) Evaluate(rec RawRecord) Evaluation {
	return rl.evaluate(rec, false)
}

// EvaluateWithAmount is Evaluate with the amount comparator predicate
// enabled, as used by category rules: a pattern on the amount field is read
// as "<op> <value>" and compared against the negated amount.
func (rl RuleList) EvaluateWithAmount(rec RawRecord) Evaluation {
	return rl.evaluate(rec, true)
}

func (rl RuleList) evaluate(rec RawRecord, amountComparator bool) Evaluation {
	ev := Evaluation{RuleIndex: -1}
	for i, rule := range rl {
		match := true
		for _, p := range rule.Predicates {
			res := evalPredicate(p, rec, amountComparator)
			ev.Results = append(ev.Results, res)
			if res.Verdict != Matched {
				match = false
			}
		}
		if match {
			ev.Matched = true
			ev.Outcome = rule.Outcome
			ev.RuleIndex = i
			return ev
		}
	}
	return ev
}

// evalPredicate applies one predicate. Any failure, including a missing field
// or a malformed pattern, is a non-match verdict: rule evaluation fails
// closed and never propagates an error.
func evalPredicate(p Predicate, rec RawRecord, amountComparator bool) PredicateResult {
	res := PredicateResult{Predicate: p}

	if amountComparator && p.Field == FieldAmount {
		res.Verdict = evalComparator(p.Pattern, rec.Amount)
		return res
	}

	val, ok := rec.Field(p.Field)
	if !ok {
		res.Verdict = FieldAbsent
		return res
	}

	// Patterns are anchored at the start of the value, so "CORP" does not
	// match "ACME CORP" but "ACME" does.
	re, err := regexp.Compile("^(?:" + p.Pattern + ")")
	if err != nil {
		res.Verdict = BadPattern
		return res
	}
	if re.MatchString(val) {
		res.Verdict = Matched
	} else {
		res.Verdict = NoMatch
	}
	return res
}

// evalComparator evaluates "<op> <value>" against the negated amount.
// Expense amounts are stored negative while rules are authored against
// positive spend figures.
func evalComparator(expr string, amount decimal.Decimal) Verdict {
	parts := strings.Fields(expr)
	if len(parts) != 2 {
		return BadComparator
	}
	threshold, err := decimal.NewFromString(parts[1])
	if err != nil {
		return BadComparator
	}
	spent := amount.Neg()

	var ok bool
	switch parts[0] {
	case "<":
		ok = spent.LessThan(threshold)
	case "<=":
		ok = spent.LessThanOrEqual(threshold)
	case "==":
		ok = spent.Equal(threshold)
	case ">=":
		ok = spent.GreaterThanOrEqual(threshold)
	case ">":
		ok = spent.GreaterThan(threshold)
	default:
		return BadComparator
	}
	if ok {
		return Matched
	}
	return NoMatch
}
