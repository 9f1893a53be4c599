package acd

// This file holds the parsed block tree and the accessors consumers use
// to read it. A child slot under a node holds either a single block or
// an ordered list of blocks of the same type; List() normalizes both
// shapes so callers never branch on which one they got.

// Value is a scalar from the definition file: either a non-negative
// integer or a string.
type Value struct {
	Str   string
	Num   int
	IsNum bool
}

// Node is one block instance from the definition file.
type Node struct {
	id    Value
	hasID bool

	props    map[string]Value
	children map[string]*childSlot
}

// childSlot is either a single node or an ordered list of nodes. The
// slot is promoted to a list the moment a second block of the same type
// appears under the same parent.
type childSlot struct {
	one  *Node
	many []*Node
}

func newNode() *Node {
	return &Node{
		props:    map[string]Value{},
		children: map[string]*childSlot{},
	}
}

func (n *Node) addChild(blockType string, child *Node) {
	slot, ok := n.children[blockType]
	if !ok {
		n.children[blockType] = &childSlot{one: child}
		return
	}
	if slot.many == nil {
		slot.many = []*Node{slot.one, child}
		slot.one = nil
		return
	}
	slot.many = append(slot.many, child)
}

// ID returns the block's inline argument, if it had one.
func (n *Node) ID() (Value, bool) {
	return n.id, n.hasID
}

// StringID returns the block's inline argument when it is a string.
func (n *Node) StringID() (string, bool) {
	if !n.hasID || n.id.IsNum {
		return "", false
	}
	return n.id.Str, true
}

// List returns the child blocks of the passed type as a list, whether
// one or many were present. Absent keys yield an empty list.
func (n *Node) List(blockType string) []*Node {
	slot, ok := n.children[blockType]
	if !ok {
		return nil
	}
	if slot.many != nil {
		return slot.many
	}
	return []*Node{slot.one}
}

// One returns the first child block of the passed type, or nil.
func (n *Node) One(blockType string) *Node {
	l := n.List(blockType)
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// IsList reports whether more than one block of the passed type was
// present, i.e. whether the slot was promoted to a list.
func (n *Node) IsList(blockType string) bool {
	slot, ok := n.children[blockType]
	return ok && slot.many != nil
}

// Int returns the named integer property, or def when the property is
// absent or not an integer.
func (n *Node) Int(key string, def int) int {
	v, ok := n.props[key]
	if !ok || !v.IsNum {
		return def
	}
	return v.Num
}

// Str returns the named string property.
func (n *Node) Str(key string) (string, bool) {
	v, ok := n.props[key]
	if !ok || v.IsNum {
		return "", false
	}
	return v.Str, true
}

// Has reports whether the named property is present, regardless of its
// scalar kind.
func (n *Node) Has(key string) bool {
	_, ok := n.props[key]
	return ok
}

// Walk calls fn for n and every node below it, depth first, children of
// a given type in insertion order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, slot := range n.children {
		if slot.many != nil {
			for _, c := range slot.many {
				c.Walk(fn)
			}
			continue
		}
		slot.one.Walk(fn)
	}
}
