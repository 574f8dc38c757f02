package huffman

import "container/heap"

// internalSymbol is the sentinel symbol assigned to non-leaf nodes.
const internalSymbol = -1

// node is a binary tree node: a leaf if symbol >= 0, otherwise
// internal. Nodes are owned by a single encode/decode invocation and
// never outlive it.
type node struct {
	frequency uint64
	symbol    int
	left      *node
	right     *node
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// nodeHeap is a min-heap over *node ordered by (frequency ASC, symbol
// ASC), matching the original's NodePtrComparator so encoder and
// decoder build identical trees from identical frequency tables.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].frequency == h[j].frequency {
		return h[i].symbol < h[j].symbol
	}
	return h[i].frequency < h[j].frequency
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(*node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// buildTree constructs the Huffman tree from a frequency table. It
// returns nil if every frequency is zero (empty input).
func buildTree(frequencies FrequencyTable) *node {
	h := make(nodeHeap, 0, 256)
	for symbol, frequency := range frequencies {
		if frequency == 0 {
			continue
		}
		h = append(h, &node{frequency: uint64(frequency), symbol: symbol})
	}
	if len(h) == 0 {
		return nil
	}
	heap.Init(&h)

	for h.Len() > 1 {
		left := heap.Pop(&h).(*node)
		right := heap.Pop(&h).(*node)
		heap.Push(&h, &node{
			frequency: left.frequency + right.frequency,
			symbol:    internalSymbol,
			left:      left,
			right:     right,
		})
	}

	return h[0]
}

// codeTableEntry holds the root-to-leaf bit path for one symbol.
type codeTableEntry struct {
	bits []bool
}

// buildCodeTable assigns a prefix code to every leaf via depth-first
// traversal: left appends 0, right appends 1. A single-leaf tree gets
// the 1-bit code 0.
func buildCodeTable(root *node) [256]codeTableEntry {
	var table [256]codeTableEntry
	if root == nil {
		return table
	}

	var walk func(n *node, prefix []bool)
	walk = func(n *node, prefix []bool) {
		if n.isLeaf() {
			entry := &table[n.symbol]
			if len(prefix) == 0 {
				entry.bits = []bool{false}
			} else {
				entry.bits = append([]bool(nil), prefix...)
			}
			return
		}
		walk(n.left, append(prefix, false))
		walk(n.right, append(prefix, true))
	}
	walk(root, nil)

	return table
}
