package bptree

import "bytes"

// compareKeys orders keys lexicographically by byte value, with a length
// tiebreak at equal prefixes (shorter sorts first). bytes.Compare already
// implements exactly this rule for []byte, so it is used directly
// throughout the package.
func compareKeys(a, b []byte) int {
	return bytes.Compare(a, b)
}

// node is a single B+tree node. Internal nodes use keys+children; leaves use
// keys+entries and are linked into the doubly linked leaf chain via
// next/prev so the cursor can walk in either direction.
type node struct {
	isLeaf   bool
	keys     [][]byte
	children []*node // internal only, len(children) == len(keys)+1
	entries  []*entry
	next     *node // leaf only
	prev     *node // leaf only
	parent   *node
}

func newLeaf(order int) *node {
	return &node{
		isLeaf:  true,
		keys:    make([][]byte, 0, order),
		entries: make([]*entry, 0, order),
	}
}

func newInternal(order int) *node {
	return &node{
		isLeaf:   false,
		keys:     make([][]byte, 0, order),
		children: make([]*node, 0, order+1),
	}
}

// leafSearch returns the smallest index p such that keys[p] >= target, or
// len(keys) if target exceeds every key in the node.
func leafSearch(keys [][]byte, target []byte) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if compareKeys(keys[mid], target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// internalSearch returns the smallest index p such that keys[p] > target;
// the child to descend into is children[p].
func internalSearch(keys [][]byte, target []byte) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if compareKeys(keys[mid], target) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// insertEntryAt shifts keys/entries right starting at idx and writes the
// new pair into the opened slot.
func (n *node) insertEntryAt(idx int, key []byte, e *entry) {
	n.keys = append(n.keys, nil)
	copy(n.keys[idx+1:], n.keys[idx:])
	n.keys[idx] = key

	n.entries = append(n.entries, nil)
	copy(n.entries[idx+1:], n.entries[idx:])
	n.entries[idx] = e
}

// insertKeyChildAt inserts key at idx and the right child immediately after it.
func (n *node) insertKeyChildAt(idx int, key []byte, right *node) {
	n.keys = append(n.keys, nil)
	copy(n.keys[idx+1:], n.keys[idx:])
	n.keys[idx] = key

	n.children = append(n.children, nil)
	copy(n.children[idx+2:], n.children[idx+1:])
	n.children[idx+1] = right

	right.parent = n
}

func (n *node) minKey() []byte {
	if n.isLeaf {
		return n.keys[0]
	}
	return n.children[0].minKey()
}
