package dom

import (
	"imstyle/pkg/css"
)

// Node is a lightweight handle to a node of a Tree. It implements
// css.Styleable. The zero Node is invalid.
type Node struct {
	tree *Tree
	id   NodeID
}

var _ css.Styleable = Node{}

// ID returns the arena handle.
func (n Node) ID() NodeID { return n.id }

// Tree returns the owning tree.
func (n Node) Tree() *Tree { return n.tree }

// Valid reports whether the handle refers to a live node.
func (n Node) Valid() bool { return n.slot() != nil }

func (n Node) slot() *slot {
	if n.tree == nil {
		return nil
	}
	return n.tree.get(n.id)
}

// mutate runs fn under the tree lock on the node's slot.
func (n Node) mutate(fn func(t *Tree, s *slot) error) error {
	if n.tree == nil {
		return ErrStaleNode
	}
	t := n.tree
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.live(n)
	if err != nil {
		return err
	}
	return fn(t, s)
}

// ElementID returns the node's element id, or "" when it has none.
func (n Node) ElementID() string {
	if s := n.slot(); s != nil {
		return s.elementID
	}
	return ""
}

// SetElementID changes the element id.
func (n Node) SetElementID(id string) error {
	return n.mutate(func(t *Tree, s *slot) error {
		if s.elementID != id {
			s.elementID = id
			t.stamp(n.id)
		}
		return nil
	})
}

// HasClass reports whether the node carries the class.
func (n Node) HasClass(name string) bool {
	if s := n.slot(); s != nil {
		_, ok := s.classes[name]
		return ok
	}
	return false
}

// Classes returns the class set in sorted order.
func (n Node) Classes() []string {
	if s := n.slot(); s != nil {
		return sortedKeys(s.classes)
	}
	return nil
}

// AddClass adds classes to the node.
func (n Node) AddClass(names ...string) error {
	return n.mutate(func(t *Tree, s *slot) error {
		if addTokens(s.classes, names) {
			t.stamp(n.id)
		}
		return nil
	})
}

// RemoveClass removes classes from the node.
func (n Node) RemoveClass(names ...string) error {
	return n.mutate(func(t *Tree, s *slot) error {
		if removeTokens(s.classes, names) {
			t.stamp(n.id)
		}
		return nil
	})
}

// ToggleClass flips a class and reports whether it is now present.
func (n Node) ToggleClass(name string) (bool, error) {
	var present bool
	err := n.mutate(func(t *Tree, s *slot) error {
		if name == "" {
			return nil
		}
		present = toggleToken(s.classes, name)
		t.stamp(n.id)
		return nil
	})
	return present, err
}

// HasTag reports whether the node carries the tag.
func (n Node) HasTag(name string) bool {
	if s := n.slot(); s != nil {
		_, ok := s.tags[name]
		return ok
	}
	return false
}

// Tags returns the tag set in sorted order.
func (n Node) Tags() []string {
	if s := n.slot(); s != nil {
		return sortedKeys(s.tags)
	}
	return nil
}

// AddTag adds tags such as hover or disabled to the node.
func (n Node) AddTag(names ...string) error {
	return n.mutate(func(t *Tree, s *slot) error {
		if addTokens(s.tags, names) {
			t.stamp(n.id)
		}
		return nil
	})
}

// RemoveTag removes tags from the node.
func (n Node) RemoveTag(names ...string) error {
	return n.mutate(func(t *Tree, s *slot) error {
		if removeTokens(s.tags, names) {
			t.stamp(n.id)
		}
		return nil
	})
}

// ToggleTag flips a tag and reports whether it is now present.
func (n Node) ToggleTag(name string) (bool, error) {
	var present bool
	err := n.mutate(func(t *Tree, s *slot) error {
		if name == "" {
			return nil
		}
		present = toggleToken(s.tags, name)
		t.stamp(n.id)
		return nil
	})
	return present, err
}

func addTokens(set map[string]struct{}, names []string) bool {
	changed := false
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := set[name]; !ok {
			set[name] = struct{}{}
			changed = true
		}
	}
	return changed
}

func removeTokens(set map[string]struct{}, names []string) bool {
	changed := false
	for _, name := range names {
		if _, ok := set[name]; ok {
			delete(set, name)
			changed = true
		}
	}
	return changed
}

func toggleToken(set map[string]struct{}, name string) bool {
	if _, ok := set[name]; ok {
		delete(set, name)
		return false
	}
	set[name] = struct{}{}
	return true
}

// Parent returns the node's parent.
func (n Node) Parent() (Node, bool) {
	s := n.slot()
	if s == nil || s.parent.IsZero() {
		return Node{}, false
	}
	return Node{tree: n.tree, id: s.parent}, true
}

// ParentElement implements css.Element.
func (n Node) ParentElement() (css.Element, bool) {
	p, ok := n.Parent()
	if !ok {
		return nil, false
	}
	return p, true
}

// Children returns the child list in order.
func (n Node) Children() []Node {
	s := n.slot()
	if s == nil {
		return nil
	}
	out := make([]Node, len(s.children))
	for i, c := range s.children {
		out[i] = Node{tree: n.tree, id: c}
	}
	return out
}

// ChildCount returns the number of children.
func (n Node) ChildCount() int {
	if s := n.slot(); s != nil {
		return len(s.children)
	}
	return 0
}

// AppendChild moves c to the end of n's children, detaching it from its
// current parent first.
func (n Node) AppendChild(c Node) error {
	return n.InsertChild(-1, c)
}

// InsertChild moves c to position i of n's children. A negative or out of
// range index appends.
func (n Node) InsertChild(i int, c Node) error {
	return n.mutate(func(t *Tree, s *slot) error {
		cs, err := t.live(c)
		if err != nil {
			return err
		}
		if c.id == t.root {
			return ErrRoot
		}
		if t.isAncestor(c.id, n.id) {
			return ErrCycle
		}
		t.detach(c.id, cs)
		if i < 0 || i > len(s.children) {
			i = len(s.children)
		}
		s.children = append(s.children, NodeID{})
		copy(s.children[i+1:], s.children[i:])
		s.children[i] = c.id
		cs.parent = n.id
		t.stamp(c.id)
		return nil
	})
}

// RemoveChild detaches c from n. The child stays alive; release it with
// Tree.Release when it is no longer needed.
func (n Node) RemoveChild(c Node) error {
	return n.mutate(func(t *Tree, s *slot) error {
		cs, err := t.live(c)
		if err != nil {
			return err
		}
		if cs.parent != n.id {
			return nil
		}
		t.detach(c.id, cs)
		return nil
	})
}

// Detach removes n from its parent, if any.
func (n Node) Detach() error {
	return n.mutate(func(t *Tree, s *slot) error {
		t.detach(n.id, s)
		return nil
	})
}

// InlineStyle returns the node's inline fragment.
func (n Node) InlineStyle() css.Fragment {
	if s := n.slot(); s != nil {
		return s.inline
	}
	return css.Fragment{}
}

// SetInlineStyle replaces the inline fragment.
func (n Node) SetInlineStyle(f css.Fragment) error {
	return n.mutate(func(t *Tree, s *slot) error {
		s.inline = f
		return nil
	})
}

// SetInlineText parses "prop: value" declarations and replaces the inline
// fragment. A malformed declaration leaves the inline style untouched.
func (n Node) SetInlineText(text string) error {
	f, err := css.ParseInline(text)
	if err != nil {
		return err
	}
	return n.SetInlineStyle(f)
}

// MergeInlineStyle overlays f on top of the current inline fragment.
func (n Node) MergeInlineStyle(f css.Fragment) error {
	return n.mutate(func(t *Tree, s *slot) error {
		s.inline.Merge(f)
		return nil
	})
}

// Stylesheet returns the node's own stylesheet, or nil.
func (n Node) Stylesheet() *css.Stylesheet {
	if s := n.slot(); s != nil {
		return s.sheet
	}
	return nil
}

// SetStylesheet attaches a stylesheet to the node; descendants without
// their own inherit it. Passing nil detaches it.
func (n Node) SetStylesheet(sheet *css.Stylesheet) error {
	return n.mutate(func(t *Tree, s *slot) error {
		s.sheet = sheet
		return nil
	})
}

// EffectiveStylesheet returns the node's stylesheet or the nearest
// ancestor's.
func (n Node) EffectiveStylesheet() *css.Stylesheet {
	for cur, ok := n, n.Valid(); ok; cur, ok = cur.Parent() {
		if sheet := cur.Stylesheet(); sheet != nil {
			return sheet
		}
	}
	return nil
}

// Text returns the node's text content.
func (n Node) Text() string {
	if s := n.slot(); s != nil {
		return s.text
	}
	return ""
}

// SetText replaces the node's text content.
func (n Node) SetText(text string) error {
	return n.mutate(func(t *Tree, s *slot) error {
		s.text = text
		return nil
	})
}

// MatchGeneration implements css.Element.
func (n Node) MatchGeneration() uint64 {
	if s := n.slot(); s != nil {
		return s.gen
	}
	return 0
}

// MatchCache implements css.Element.
func (n Node) MatchCache() *css.MatchCache {
	if s := n.slot(); s != nil {
		return &s.cache
	}
	return nil
}
