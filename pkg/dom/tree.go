// Package dom is the caller-owned node tree the cascade and layout passes
// operate over. Nodes live in an arena owned by a Tree and are addressed by
// NodeID handles, so detached or released nodes never leave dangling
// references behind.
package dom

import (
	"errors"
	"sort"
	"sync"

	"imstyle/pkg/css"
	"imstyle/pkg/geom"
)

var (
	// ErrStaleNode is returned when a handle refers to a released node or
	// to a node of another tree.
	ErrStaleNode = errors.New("stale node handle")
	// ErrCycle is returned when a node would become its own ancestor.
	ErrCycle = errors.New("node would become its own ancestor")
	// ErrRoot is returned when the root is attached below another node.
	ErrRoot = errors.New("the root node cannot be attached")
	// ErrHasParent is returned when an attached node is used where a
	// detached one is required.
	ErrHasParent = errors.New("node already has a parent")
)

// NodeID is a handle into a Tree's arena. The zero value refers to no node.
type NodeID struct {
	index   uint32
	version uint32
}

// IsZero reports whether the handle refers to no node.
func (id NodeID) IsZero() bool { return id.version == 0 }

type slot struct {
	version uint32
	live    bool

	elementID string
	classes   map[string]struct{}
	tags      map[string]struct{}
	parent    NodeID
	children  []NodeID

	inline css.Fragment
	sheet  *css.Stylesheet
	text   string

	gen   uint64
	cache css.MatchCache

	style        css.ComputedStyle
	styleHash    uint64
	styled       bool
	styleChanged bool
	bounds       geom.Bounds
	layout       LayoutState
}

// Tree owns every node created through it. Mutating methods lock the tree;
// read accessors do not, so readers on other goroutines should hold Lock
// while no mutation from the same goroutine is pending.
type Tree struct {
	mu    sync.Mutex
	slots []*slot
	free  []uint32
	root  NodeID
	clock uint64
}

// NewTree returns a tree with an empty root node.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.alloc("")
	return t
}

// Lock acquires the tree lock. Reflow holds it for the whole frame; node
// mutators must not be called while it is held by the same goroutine.
func (t *Tree) Lock() { t.mu.Lock() }

// Unlock releases the tree lock.
func (t *Tree) Unlock() { t.mu.Unlock() }

// Root returns the root node.
func (t *Tree) Root() Node { return Node{tree: t, id: t.root} }

// Node wraps a handle. The result may be invalid; see Node.Valid.
func (t *Tree) Node(id NodeID) Node { return Node{tree: t, id: id} }

// NewNode creates a detached node with the given element id.
func (t *Tree) NewNode(elementID string) Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Node{tree: t, id: t.alloc(elementID)}
}

// SetRoot makes a detached node the new root. The old root stays alive but
// detached.
func (t *Tree) SetRoot(n Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.live(n)
	if err != nil {
		return err
	}
	if !s.parent.IsZero() {
		return ErrHasParent
	}
	t.root = n.id
	t.stamp(n.id)
	return nil
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return len(t.slots) - len(t.free)
}

// ByID returns the first node in pre-order under the root whose element id
// is name.
func (t *Tree) ByID(name string) (Node, bool) {
	var found Node
	ok := false
	t.Walk(func(n Node) bool {
		if n.ElementID() == name {
			found, ok = n, true
		}
		return !ok
	})
	return found, ok
}

// Walk visits the root and its descendants in pre-order until fn returns
// false.
func (t *Tree) Walk(fn func(Node) bool) {
	t.walk(t.root, fn)
}

func (t *Tree) walk(id NodeID, fn func(Node) bool) bool {
	s := t.get(id)
	if s == nil {
		return true
	}
	if !fn(Node{tree: t, id: id}) {
		return false
	}
	for _, c := range s.children {
		if !t.walk(c, fn) {
			return false
		}
	}
	return true
}

// Release detaches n and frees it together with its subtree. Handles to any
// of the freed nodes become stale, and their match and measurement caches
// are dropped.
func (t *Tree) Release(n Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.live(n)
	if err != nil {
		return err
	}
	t.detach(n.id, s)
	if n.id == t.root {
		t.root = NodeID{}
	}
	t.release(n.id)
	return nil
}

func (t *Tree) release(id NodeID) {
	s := t.get(id)
	if s == nil {
		return
	}
	for _, c := range s.children {
		t.release(c)
	}
	version := s.version
	*s = slot{version: version + 1}
	t.free = append(t.free, id.index)
}

func (t *Tree) alloc(elementID string) NodeID {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, &slot{})
	}
	s := t.slots[idx]
	if s.version == 0 {
		s.version = 1
	}
	s.live = true
	s.elementID = elementID
	s.classes = make(map[string]struct{})
	s.tags = make(map[string]struct{})
	s.style = css.DefaultStyle()
	t.clock++
	s.gen = t.clock
	return NodeID{index: idx, version: s.version}
}

func (t *Tree) get(id NodeID) *slot {
	if id.IsZero() || int(id.index) >= len(t.slots) {
		return nil
	}
	s := t.slots[id.index]
	if !s.live || s.version != id.version {
		return nil
	}
	return s
}

func (t *Tree) live(n Node) (*slot, error) {
	if n.tree != t {
		return nil, ErrStaleNode
	}
	s := t.get(n.id)
	if s == nil {
		return nil, ErrStaleNode
	}
	return s, nil
}

// stamp gives id and every descendant a fresh generation, invalidating
// their cached selector matches.
func (t *Tree) stamp(id NodeID) {
	t.clock++
	t.stampWith(id, t.clock)
}

func (t *Tree) stampWith(id NodeID, gen uint64) {
	s := t.get(id)
	if s == nil {
		return
	}
	s.gen = gen
	for _, c := range s.children {
		t.stampWith(c, gen)
	}
}

func (t *Tree) detach(id NodeID, s *slot) {
	p := t.get(s.parent)
	if p == nil {
		s.parent = NodeID{}
		return
	}
	for i, c := range p.children {
		if c == id {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	s.parent = NodeID{}
	t.stamp(id)
}

func (t *Tree) isAncestor(anc, id NodeID) bool {
	for cur := id; !cur.IsZero(); {
		if cur == anc {
			return true
		}
		s := t.get(cur)
		if s == nil {
			return false
		}
		cur = s.parent
	}
	return false
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
