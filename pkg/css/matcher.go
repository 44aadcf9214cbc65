package css

import "sync"

// Element is the view of a node the matcher needs. Implementations must
// bump MatchGeneration whenever the node's id, classes, tags or parent
// change, and whenever any ancestor's generation changes.
type Element interface {
	ElementID() string
	HasClass(name string) bool
	HasTag(name string) bool
	ParentElement() (Element, bool)
	MatchGeneration() uint64
	MatchCache() *MatchCache
}

// MatchCache memoizes match results per selector link for a single node.
// It is safe for concurrent use.
type MatchCache struct {
	mu      sync.Mutex
	gen     uint64
	results map[*Link]bool
}

func (c *MatchCache) lookup(gen uint64, l *Link) (matched, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false, false
	}
	matched, ok = c.results[l]
	return matched, ok
}

func (c *MatchCache) store(gen uint64, l *Link, matched bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.results == nil {
		c.gen = gen
		c.results = make(map[*Link]bool)
	}
	c.results[l] = matched
}

// Reset drops every cached result.
func (c *MatchCache) Reset() {
	c.mu.Lock()
	c.results = nil
	c.gen = 0
	c.mu.Unlock()
}

// Len returns the number of cached results valid for gen.
func (c *MatchCache) Len(gen uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return 0
	}
	return len(c.results)
}

// Matches reports whether the chain ending at l matches el. Matching starts
// at the leaf link and walks toward the chain root, mirroring the element's
// ancestry.
func Matches(l *Link, el Element) bool {
	if l == nil || el == nil {
		return false
	}
	cache := el.MatchCache()
	gen := el.MatchGeneration()
	if cache != nil {
		if matched, ok := cache.lookup(gen, l); ok {
			return matched
		}
	}
	matched := matchChain(l, el)
	if cache != nil {
		cache.store(gen, l, matched)
	}
	return matched
}

func matchChain(l *Link, el Element) bool {
	if !matchesLink(l, el) {
		return false
	}
	if l.Parent == nil {
		return true
	}

	parent, ok := el.ParentElement()
	if !ok {
		return false
	}
	switch l.Relation {
	case RelChild:
		return Matches(l.Parent, parent)
	case RelDescendant:
		for anc, ok := parent, true; ok; anc, ok = anc.ParentElement() {
			if Matches(l.Parent, anc) {
				return true
			}
		}
	}
	return false
}

// matchesLink checks a single compound selector against el.
func matchesLink(l *Link, el Element) bool {
	if l.MatchAll {
		return true
	}
	if l.ID != "" && el.ElementID() != l.ID {
		return false
	}
	for _, c := range l.Classes {
		if !el.HasClass(c) {
			return false
		}
	}
	for _, t := range l.Tags {
		if !el.HasTag(t) {
			return false
		}
	}
	return true
}

// MatchesAny reports whether any of the chains matches el.
func MatchesAny(links []*Link, el Element) bool {
	for _, l := range links {
		if Matches(l, el) {
			return true
		}
	}
	return false
}
