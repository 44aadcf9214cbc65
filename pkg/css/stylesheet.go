package css

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Rule is one selector chain with the fragment it applies.
type Rule struct {
	Selector    *Link
	Fragment    Fragment
	Specificity Specificity
	Order       int // source order inside the stylesheet
}

// Stylesheet is an ordered list of rules. It is safe for concurrent reads;
// writers must not race with a cascade pass on a tree that uses it.
type Stylesheet struct {
	serial uint64

	mu    sync.RWMutex
	rules []Rule
}

var stylesheetSerial atomic.Uint64

// NewStylesheet returns an empty stylesheet with a process-unique serial.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{serial: stylesheetSerial.Add(1)}
}

// Serial identifies the stylesheet in change hashes.
func (s *Stylesheet) Serial() uint64 { return s.serial }

// AddRule parses selector and appends one rule per comma separated chain.
// Every chain of the list shares the fragment and gets its own order index.
func (s *Stylesheet) AddRule(selector string, f Fragment) error {
	links, err := Parse(selector)
	if err != nil {
		return fmt.Errorf("add rule: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range links {
		s.rules = append(s.rules, Rule{
			Selector:    l,
			Fragment:    f,
			Specificity: l.Specificity(),
			Order:       len(s.rules),
		})
	}
	return nil
}

// Append copies every rule of o after the rules of s, keeping their relative order.
func (s *Stylesheet) Append(o *Stylesheet) {
	rules := o.Rules()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rules {
		r.Order = len(s.rules)
		s.rules = append(s.rules, r)
	}
}

// Rules returns a copy of the rule list.
func (s *Stylesheet) Rules() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *Stylesheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// MatchingRules returns the rules matching el in increasing priority:
// ascending specificity, ties broken by ascending source order.
func (s *Stylesheet) MatchingRules(el Element) []Rule {
	s.mu.RLock()
	matches := make([]Rule, 0, 4)
	for _, rule := range s.rules {
		if Matches(rule.Selector, el) {
			matches = append(matches, rule)
		}
	}
	s.mu.RUnlock()

	sortRules(matches)
	return matches
}

func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if c := rules[i].Specificity.Compare(rules[j].Specificity); c != 0 {
			return c < 0
		}
		return rules[i].Order < rules[j].Order
	})
}
