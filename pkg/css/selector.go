package css

import (
	"sort"
	"strings"
	"sync"
)

// Relation is how a selector link relates to its parent link.
type Relation uint8

const (
	RelNone       Relation = iota // root of the chain
	RelChild                      // a > b
	RelDescendant                 // a b
)

// Link is one compound selector in a chain. Parse returns the leaf link of
// each chain; the rest of the chain is reached through Parent. Links are
// immutable once parsed and are shared between callers.
type Link struct {
	ID       string
	Classes  []string
	Tags     []string
	MatchAll bool
	Relation Relation
	Parent   *Link
}

// Specificity is the (id count, class+tag count) priority of a selector.
type Specificity struct {
	IDs     int
	Classes int
}

// Compare returns -1, 0 or +1, comparing lexicographically.
func (s Specificity) Compare(o Specificity) int {
	switch {
	case s.IDs != o.IDs:
		if s.IDs < o.IDs {
			return -1
		}
		return 1
	case s.Classes != o.Classes:
		if s.Classes < o.Classes {
			return -1
		}
		return 1
	}
	return 0
}

// Specificity sums the specificity of every link in the chain ending at l.
func (l *Link) Specificity() Specificity {
	var s Specificity
	for link := l; link != nil; link = link.Parent {
		if link.ID != "" {
			s.IDs++
		}
		s.Classes += len(link.Classes) + len(link.Tags)
	}
	return s
}

// Depth returns the number of links in the chain ending at l.
func (l *Link) Depth() int {
	n := 0
	for link := l; link != nil; link = link.Parent {
		n++
	}
	return n
}

func (l *Link) String() string {
	var sb strings.Builder
	l.write(&sb)
	return sb.String()
}

func (l *Link) write(sb *strings.Builder) {
	if l.Parent != nil {
		l.Parent.write(sb)
		if l.Relation == RelChild {
			sb.WriteString(" > ")
		} else {
			sb.WriteByte(' ')
		}
	}
	if l.MatchAll {
		sb.WriteByte('*')
	}
	if l.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(l.ID)
	}
	for _, c := range l.Classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	for _, t := range l.Tags {
		sb.WriteByte(':')
		sb.WriteString(t)
	}
}

func (l *Link) addClass(name string) {
	if !containsString(l.Classes, name) {
		l.Classes = append(l.Classes, name)
	}
}

func (l *Link) addTag(name string) {
	if !containsString(l.Tags, name) {
		l.Tags = append(l.Tags, name)
	}
}

func (l *Link) finish() {
	sort.Strings(l.Classes)
	sort.Strings(l.Tags)
	if l.ID != "" || len(l.Classes) > 0 || len(l.Tags) > 0 {
		// "*.a" means ".a"
		l.MatchAll = false
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type parseResult struct {
	links []*Link
	err   error
}

var selectorCache = struct {
	sync.RWMutex
	m map[string]parseResult
}{m: make(map[string]parseResult)}

// Parse parses a comma separated selector list and returns the leaf link of
// each chain. Results are cached by source text.
func Parse(text string) ([]*Link, error) {
	selectorCache.RLock()
	res, ok := selectorCache.m[text]
	selectorCache.RUnlock()
	if !ok {
		links, err := parseSelectors(text)
		res = parseResult{links: links, err: err}
		selectorCache.Lock()
		selectorCache.m[text] = res
		selectorCache.Unlock()
	}
	if res.err != nil {
		return nil, res.err
	}
	out := make([]*Link, len(res.links))
	copy(out, res.links)
	return out, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level selector constants.
func MustParse(text string) []*Link {
	links, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return links
}

func isCompound(t SelectorTokenType) bool {
	switch t {
	case TokenIdent, TokenID, TokenClass, TokenTag, TokenStar:
		return true
	}
	return false
}

func parseSelectors(text string) ([]*Link, error) {
	tz := NewSelectorTokenizer(text)
	tokens, err := tz.Tokens()
	if err != nil {
		return nil, err
	}

	var (
		chains  []*Link
		cur     *Link
		pending = RelNone
	)

	finishChain := func(pos int) error {
		if pending != RelNone {
			return tz.errorf(pos, "combinator without a right-hand selector")
		}
		if cur == nil {
			return tz.errorf(pos, "empty selector")
		}
		for l := cur; l != nil; l = l.Parent {
			l.finish()
		}
		chains = append(chains, cur)
		cur = nil
		return nil
	}

	for i, tok := range tokens {
		switch tok.Type {
		case TokenSpace:
			// whitespace is a descendant combinator only between two compounds
			if cur != nil && pending == RelNone && i+1 < len(tokens) && isCompound(tokens[i+1].Type) {
				pending = RelDescendant
			}
		case TokenChild:
			if cur == nil {
				return nil, tz.errorf(tok.Pos, "'>' without a left-hand selector")
			}
			if pending == RelChild {
				return nil, tz.errorf(tok.Pos, "repeated '>'")
			}
			pending = RelChild
		case TokenComma:
			if err := finishChain(tok.Pos); err != nil {
				return nil, err
			}
		default:
			switch {
			case cur == nil:
				cur = &Link{}
			case pending != RelNone:
				cur = &Link{Parent: cur, Relation: pending}
				pending = RelNone
			case tok.Type == TokenID && cur.ID != "":
				// "#a#b" is read as "#a #b"
				cur = &Link{Parent: cur, Relation: RelDescendant}
			}
			switch tok.Type {
			case TokenIdent, TokenTag:
				cur.addTag(tok.Value)
			case TokenID:
				cur.ID = tok.Value
			case TokenClass:
				cur.addClass(tok.Value)
			case TokenStar:
				cur.MatchAll = true
			}
		}
	}
	if err := finishChain(len(text)); err != nil {
		return nil, err
	}
	return chains, nil
}
