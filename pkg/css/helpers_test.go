package css

// testNode is a minimal Element/Styleable used by the package tests.
type testNode struct {
	id      string
	classes map[string]bool
	tags    map[string]bool
	parent  *testNode
	gen     uint64
	cache   MatchCache
	inline  Fragment
	sheet   *Stylesheet
}

func newTestNode(parent *testNode, id string, classes ...string) *testNode {
	n := &testNode{id: id, classes: map[string]bool{}, tags: map[string]bool{}, parent: parent, gen: 1}
	for _, c := range classes {
		n.classes[c] = true
	}
	return n
}

func (n *testNode) withTags(tags ...string) *testNode {
	for _, t := range tags {
		n.tags[t] = true
	}
	return n
}

func (n *testNode) ElementID() string         { return n.id }
func (n *testNode) HasClass(name string) bool { return n.classes[name] }
func (n *testNode) HasTag(name string) bool   { return n.tags[name] }
func (n *testNode) MatchGeneration() uint64   { return n.gen }
func (n *testNode) MatchCache() *MatchCache   { return &n.cache }
func (n *testNode) InlineStyle() Fragment     { return n.inline }

func (n *testNode) ParentElement() (Element, bool) {
	if n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

func (n *testNode) EffectiveStylesheet() *Stylesheet {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.sheet != nil {
			return cur.sheet
		}
	}
	return nil
}

// bump mimics the generation propagation a real tree performs.
func (n *testNode) bump(descendants ...*testNode) {
	n.gen++
	for _, d := range descendants {
		d.gen++
	}
}
