package banksort

import (
	"fmt"
	"log"
)

// DecisionProvider resolves the cases rules cannot: a record with no matching
// rule, or a rule that resolved to ask. Implementations may block waiting for
// an operator; the workflow asks for exactly one decision at a time.
//
// Both methods report ok=false to skip the record for this run, which is the
// escape hatch from an otherwise unterminable prompt.
type DecisionProvider interface {
	ResolveAction(rec RawRecord, src *Source) (action Action, ok bool, err error)
	ResolveCategory(e *Entry, categories []string) (category string, ok bool, err error)
}

// AskReason tells why a record was routed to the decision provider. A record
// matching no rule and a record matching an explicit ask rule take the same
// path but stay distinguishable in logs and reports.
type AskReason int

const (
	ReasonNoRule AskReason = iota
	ReasonRuleAsk
)

func (r AskReason) String() string {
	switch r {
	case ReasonNoRule:
		return "no rule matched"
	case ReasonRuleAsk:
		return "rule says ask"
	default:
		return "unknown"
	}
}

// Drift describes one already-reconciled record whose stored metadata
// differs from what the current source and rules would produce.
type Drift struct {
	Entry      *Entry
	WantAction Action
	WantType   string
	WantName   string
}

// ReconcileReport summarizes one reconciliation run over one source.
type ReconcileReport struct {
	Changes       ChangeSet
	Drifted       []Drift
	InvalidAction []*Entry
	Asked         map[AskReason]int
	Skipped       int
}

// Reconciler drives incoming records from a source through the rule engine
// against the ledger.
type Reconciler struct {
	Ledger  *Ledger
	Decider DecisionProvider

	// AutoCorrect rewrites drifted metadata and invalid actions instead of
	// only reporting them. Off by default: imported data may legitimately
	// diverge from current rules as rules evolve, and silent rewriting would
	// erase the audit trail.
	AutoCorrect bool
}

// Reconcile processes the candidate records extracted from one source's
// statement files. New records are added under the action the source's rules
// resolve, asking the decision provider when rules cannot decide. Known
// records are checked for metadata drift and invalid actions, which are
// reported but not corrected.
func (rc *Reconciler) Reconcile(src *Source, records []RawRecord) (ReconcileReport, error) {
	report := ReconcileReport{Asked: make(map[AskReason]int)}

	for _, rec := range records {
		ev := src.Rules.Evaluate(rec)

		if !rc.Ledger.Contains(rec) {
			if err := rc.addNew(src, rec, ev, &report); err != nil {
				return report, err
			}
			continue
		}
		rc.checkExisting(src, rec, ev, &report)
	}
	return report, nil
}

func (rc *Reconciler) addNew(src *Source, rec RawRecord, ev Evaluation, report *ReconcileReport) error {
	var action Action
	switch {
	case ev.Matched && ev.Outcome != Ask:
		action = Action(ev.Outcome)
	default:
		reason := ReasonNoRule
		if ev.Matched {
			reason = ReasonRuleAsk
		}
		report.Asked[reason]++
		log.Printf("asking for action (%s): %s", reason, rec.Summary())

		resolved, ok, err := rc.Decider.ResolveAction(rec, src)
		if err != nil {
			return fmt.Errorf("resolving action for %q: %w", rec.Payee, err)
		}
		if !ok {
			report.Skipped++
			return nil
		}
		action = resolved
	}
	report.Changes.Merge(rc.Ledger.Add(rec, src, action))
	return nil
}

func (rc *Reconciler) checkExisting(src *Source, rec RawRecord, ev Evaluation, report *ReconcileReport) {
	if ev.Matched && ev.Outcome != Ask {
		action := Action(ev.Outcome)
		if rc.Ledger.IsMetadataDrifted(rec, src, action) {
			e := rc.Ledger.find(rec)
			report.Drifted = append(report.Drifted, Drift{
				Entry:      e,
				WantAction: action,
				WantType:   src.Type,
				WantName:   src.Name,
			})
			log.Printf("metadata drift: stored %s/%s/%s, rules now say %s/%s/%s: %s",
				e.Action, e.SourceType, e.SourceName, action, src.Type, src.Name, rec.Summary())
			if rc.AutoCorrect {
				report.Changes.Merge(rc.Ledger.UpdateMetadata(rec, src, action))
			}
		}
	}

	if !rc.Ledger.IsActionValid(rec) {
		e := rc.Ledger.find(rec)
		report.InvalidAction = append(report.InvalidAction, e)
		log.Printf("invalid action %q: %s", e.Action, rec.Summary())
		if rc.AutoCorrect && ev.Matched && ev.Outcome != Ask {
			report.Changes.Merge(rc.Ledger.UpdateMetadata(rec, src, Action(ev.Outcome)))
		}
	}
}
