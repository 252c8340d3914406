package decider

import "github.com/rfinn/banksort"

// Scripted is a deterministic provider for batch runs and tests: it answers
// from preset lists, in order, and skips once the answers run out.
type Scripted struct {
	Actions    []banksort.Action
	Categories []string

	nextAction   int
	nextCategory int
}

var _ banksort.DecisionProvider = (*Scripted)(nil)

func (s *Scripted) ResolveAction(_ banksort.RawRecord, _ *banksort.Source) (banksort.Action, bool, error) {
	if s.nextAction >= len(s.Actions) {
		return "", false, nil
	}
	a := s.Actions[s.nextAction]
	s.nextAction++
	return a, true, nil
}

func (s *Scripted) ResolveCategory(_ *banksort.Entry, _ []string) (string, bool, error) {
	if s.nextCategory >= len(s.Categories) {
		return "", false, nil
	}
	c := s.Categories[s.nextCategory]
	s.nextCategory++
	return c, true, nil
}
