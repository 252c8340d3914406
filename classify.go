package banksort

import (
	"fmt"
	"log"
)

// Conflict reports one categorized expense whose rules now resolve to a
// different category. The stored category is kept.
type Conflict struct {
	Entry     *Entry
	Suggested string
}

// ClassifyReport summarizes one classifier run.
type ClassifyReport struct {
	Changes   ChangeSet
	Conflicts []Conflict
	Asked     map[AskReason]int
	Skipped   int
}

// Classifier assigns categories to expense entries by rule, deferring to the
// decision provider when rules resolve to ask.
type Classifier struct {
	Ledger  *Ledger
	Rules   *CategoryRules
	Decider DecisionProvider

	// Recategorize re-derives the category of already-categorized entries
	// instead of reporting conflicts.
	Recategorize bool
}

// Classify walks every expense entry. Uncategorized entries get the category
// their rules resolve (asking when ambiguous); categorized entries are only
// checked for conflicts, which are reported, never applied. With Recategorize
// set, the derived category replaces the stored one instead.
func (c *Classifier) Classify() (ClassifyReport, error) {
	report := ClassifyReport{Asked: make(map[AskReason]int)}

	for e := range c.Ledger.Entries() {
		if e.Action != Expense {
			continue
		}
		if err := c.classifyEntry(e, &report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (c *Classifier) classifyEntry(e *Entry, report *ClassifyReport) error {
	ev := c.Rules.Rules.EvaluateWithAmount(e.Raw)

	outcome := c.Rules.Default
	if ev.Matched {
		outcome = ev.Outcome
	}

	switch {
	case e.Category == "" || c.Recategorize:
		category := string(outcome)
		if outcome == Ask {
			reason := ReasonNoRule
			if ev.Matched {
				reason = ReasonRuleAsk
			}
			report.Asked[reason]++
			log.Printf("asking for category (%s): %s", reason, e.Summary())

			chosen, ok, err := c.Decider.ResolveCategory(e, c.Rules.Categories)
			if err != nil {
				return fmt.Errorf("resolving category for %q: %w", e.Raw.Payee, err)
			}
			if !ok {
				report.Skipped++
				return nil
			}
			category = chosen
		}
		if category != e.Category {
			report.Changes.Merge(c.Ledger.SetCategory(e.Raw, category))
		}

	case outcome != Ask && string(outcome) != e.Category:
		// Once assigned, a category is never silently overwritten: a
		// conflicting rule outcome on a later run is reported, not applied.
		report.Conflicts = append(report.Conflicts, Conflict{Entry: e, Suggested: string(outcome)})
		log.Printf("category conflict: stored %q, rules now say %q: %s", e.Category, outcome, e.Summary())
	}
	return nil
}
