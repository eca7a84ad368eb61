package bptree

// Cursor walks live entries in key order, forward or backward, over the
// leaf chain. A freshly created Cursor is not positioned; call First, Last,
// or Seek before reading Key/Value.
type Cursor struct {
	tree *Tree
	leaf *node
	idx  int
	ok   bool
}

// NewCursor returns an unpositioned cursor over tree.
func NewCursor(tree *Tree) *Cursor {
	return &Cursor{tree: tree}
}

// Valid reports whether the cursor currently sits on a live entry.
func (c *Cursor) Valid() bool { return c.ok }

// Key returns the current entry's key. Valid must be true.
func (c *Cursor) Key() []byte { return c.leaf.keys[c.idx] }

// Value returns the current entry's value. Valid must be true.
func (c *Cursor) Value() []byte { return c.leaf.entries[c.idx].value }

// First positions the cursor at the smallest live key.
func (c *Cursor) First() bool {
	c.leaf = c.tree.firstLeaf
	c.idx = -1
	return c.Next()
}

// Last positions the cursor at the largest live key.
func (c *Cursor) Last() bool {
	c.leaf = lastLeaf(c.tree)
	if c.leaf == nil {
		c.ok = false
		return false
	}
	c.idx = len(c.leaf.keys)
	return c.Prev()
}

// Seek positions the cursor at the smallest live key >= target.
func (c *Cursor) Seek(target []byte) bool {
	c.leaf = c.tree.descend(target)
	c.idx = leafSearch(c.leaf.keys, target) - 1
	return c.Next()
}

// Next advances to the next live key. It returns false and invalidates the
// cursor once the chain is exhausted.
func (c *Cursor) Next() bool {
	for c.leaf != nil {
		c.idx++
		for c.idx < len(c.leaf.keys) {
			if !c.leaf.entries[c.idx].tomb {
				c.ok = true
				return true
			}
			c.idx++
		}
		c.leaf = c.leaf.next
		c.idx = -1
	}
	c.ok = false
	return false
}

// Prev retreats to the previous live key. It returns false and invalidates
// the cursor once the chain is exhausted in the backward direction.
func (c *Cursor) Prev() bool {
	for c.leaf != nil {
		c.idx--
		for c.idx >= 0 {
			if !c.leaf.entries[c.idx].tomb {
				c.ok = true
				return true
			}
			c.idx--
		}
		c.leaf = c.leaf.prev
		if c.leaf != nil {
			c.idx = len(c.leaf.keys)
		}
	}
	c.ok = false
	return false
}

// lastLeaf walks the leaf chain from firstLeaf to its tail. The tree keeps
// no direct pointer to the rightmost leaf since appends (the common case)
// happen at the chain's tail far more often than full backward scans occur.
func lastLeaf(t *Tree) *node {
	cur := t.firstLeaf
	if cur == nil {
		return nil
	}
	for cur.next != nil {
		cur = cur.next
	}
	return cur
}
