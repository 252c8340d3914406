package banksort

import (
	"iter"
	"sort"

	"github.com/rfinn/banksort/date"
)

// ChangeSet counts the mutations applied to a ledger. Mutating operations
// return one; callers sum them and use the total to decide whether persisting
// is needed.
type ChangeSet struct {
	Added    int
	Modified int
}

// Merge accumulates another change set into this one.
func (c *ChangeSet) Merge(o ChangeSet) {
	c.Added += o.Added
	c.Modified += o.Modified
}

// Dirty reports whether any mutation was recorded.
func (c ChangeSet) Dirty() bool { return c.Added > 0 || c.Modified > 0 }

// Ledger holds the reconciled entries. Identity is the fingerprint of the
// normalized raw record: no two entries ever share one, and re-adding a known
// record is a no-op.
//
// The ledger is a single-writer, in-process store. It is mutated only by the
// reconciliation workflow and the classifier, never concurrently.
type Ledger struct {
	entries []*Entry
	index   map[string]*Entry // fingerprint of the raw record
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{index: make(map[string]*Entry)}
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Contains reports whether the raw record is already reconciled.
func (l *Ledger) Contains(r RawRecord) bool {
	_, ok := l.index[r.Fingerprint()]
	return ok
}

func (l *Ledger) find(r RawRecord) *Entry {
	return l.index[r.Fingerprint()]
}

// Add reconciles a new raw record under the given source tag and action.
// It is a no-op when the record is already present: store size changes by at
// most one no matter how often the same record is imported.
func (l *Ledger) Add(r RawRecord, src *Source, action Action) ChangeSet {
	if l.Contains(r) {
		return ChangeSet{}
	}
	e := &Entry{
		Action:     action,
		SourceType: src.Type,
		SourceName: src.Name,
		Raw:        r,
	}
	l.entries = append(l.entries, e)
	l.index[r.Fingerprint()] = e
	return ChangeSet{Added: 1}
}

// UpdateMetadata overwrites the action and source tag of the entry matching
// the raw record. The default workflow never calls it: metadata drift is
// reported, not fixed, unless auto-correction is explicitly enabled.
func (l *Ledger) UpdateMetadata(r RawRecord, src *Source, action Action) ChangeSet {
	e := l.find(r)
	if e == nil {
		return ChangeSet{}
	}
	e.Action = action
	e.SourceType = src.Type
	e.SourceName = src.Name
	return ChangeSet{Modified: 1}
}

// SetCategory assigns a category to the entry matching the raw record.
func (l *Ledger) SetCategory(r RawRecord, category string) ChangeSet {
	e := l.find(r)
	if e == nil {
		return ChangeSet{}
	}
	e.Category = category
	return ChangeSet{Modified: 1}
}

// RemoveCategory clears the given category from every entry carrying it.
func (l *Ledger) RemoveCategory(category string) ChangeSet {
	var cs ChangeSet
	for _, e := range l.entries {
		if e.Category == category {
			e.Category = ""
			cs.Modified++
		}
	}
	return cs
}

// IsMetadataDrifted reports whether the stored action or source tag of the
// matching entry differ from what the current source and rules would produce.
// An unknown record is not drifted.
func (l *Ledger) IsMetadataDrifted(r RawRecord, src *Source, action Action) bool {
	e := l.find(r)
	if e == nil {
		return false
	}
	return e.Action != action || e.SourceType != src.Type || e.SourceName != src.Name
}

// IsActionValid reports whether the stored action of the matching entry is in
// the closed action set. An unknown record is considered valid.
func (l *Ledger) IsActionValid(r RawRecord) bool {
	e := l.find(r)
	if e == nil {
		return true
	}
	return e.Action.Valid()
}

// Entries iterates over all entries in ledger order.
func (l *Ledger) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Filter is a conjunction of entry criteria. Zero-valued criteria are not
// applied.
type Filter struct {
	Range      date.Range // half-open posted-date range
	Action     Action
	Categories []string
}

func (f Filter) matches(e *Entry) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if e.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.Range.IsZero() {
		on, err := e.Raw.When()
		if err != nil {
			// An unparseable date cannot satisfy a date criterion.
			return false
		}
		if !f.Range.Contains(on) {
			return false
		}
	}
	return true
}

// Query returns the entries matching the filter, in ledger order.
func (l *Ledger) Query(f Filter) []*Entry {
	var out []*Entry
	for _, e := range l.entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Prune permanently drops every entry not matching the filter.
func (l *Ledger) Prune(f Filter) {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if f.matches(e) {
			kept = append(kept, e)
		} else {
			delete(l.index, e.Raw.Fingerprint())
		}
	}
	l.entries = kept
}

// Stats summarizes the entries carrying one action.
type Stats struct {
	Oldest date.Date
	Newest date.Date
	Count  int
}

// ActionStats scans the ledger for the oldest and newest posted dates and the
// entry count for the given action. Entries with unparseable dates count but
// do not move the bounds.
func (l *Ledger) ActionStats(action Action) Stats {
	var s Stats
	for _, e := range l.entries {
		if e.Action != action {
			continue
		}
		s.Count++
		on, err := e.Raw.When()
		if err != nil {
			continue
		}
		if s.Oldest.IsZero() || on.Before(s.Oldest) {
			s.Oldest = on
		}
		if s.Newest.IsZero() || on.After(s.Newest) {
			s.Newest = on
		}
	}
	return s
}

// stableSort orders entries by posted date, keeping the relative order of
// entries on the same day. Entries with unparseable dates sort first.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		di, erri := l.entries[i].Raw.When()
		dj, errj := l.entries[j].Raw.When()
		if erri != nil || errj != nil {
			return erri != nil && errj == nil
		}
		return di.Before(dj)
	})
}
