package shortestpath

import "errors"

// ErrHeapEmpty mirrors the teacher's heap.go sentinel.
var ErrHeapEmpty = errors.New("shortestpath: heap is empty")

// hNode is a min-heap entry: the vertex name, its tentative cost, and the
// name of the edge used to reach it (for path reconstruction). Kept and
// adapted from the teacher's heap.go HNode, generalized from int32 node ids
// to string vertex/edge names.
type hNode struct {
	Vertex   string
	Cost     float64
	ViaEdge  string
	Previous string
}

type hNodes []hNode

// heap is a binary min-heap over hNode.Cost, kept and adapted from the
// teacher's heap.go (same parent/child index arithmetic and
// heapify-up/down structure).
type heap struct {
	items hNodes
}

func newHeap() *heap { return &heap{} }

func (h *heap) IsEmpty() bool { return len(h.items) == 0 }

func (h *heap) Insert(n hNode) {
	h.items = append(h.items, n)
	h.heapifyUp(len(h.items) - 1)
}

func (h *heap) Min() (hNode, error) {
	if h.IsEmpty() {
		return hNode{}, ErrHeapEmpty
	}
	return h.items[0], nil
}

func (h *heap) DeleteMin() (hNode, error) {
	if h.IsEmpty() {
		return hNode{}, ErrHeapEmpty
	}
	min := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.heapifyDown(0)
	}
	return min, nil
}

func parentIndex(i int) int     { return (i - 1) / 2 }
func leftChildIndex(i int) int  { return 2*i + 1 }
func rightChildIndex(i int) int { return 2*i + 2 }

func (h *heap) hasParent(i int) bool     { return parentIndex(i) >= 0 && i != 0 }
func (h *heap) hasLeftChild(i int) bool  { return leftChildIndex(i) < len(h.items) }
func (h *heap) hasRightChild(i int) bool { return rightChildIndex(i) < len(h.items) }

func (h *heap) heapifyUp(i int) {
	for h.hasParent(i) && h.items[parentIndex(i)].Cost > h.items[i].Cost {
		p := parentIndex(i)
		h.items[p], h.items[i] = h.items[i], h.items[p]
		i = p
	}
}

func (h *heap) heapifyDown(i int) {
	for h.hasLeftChild(i) {
		smaller := leftChildIndex(i)
		if h.hasRightChild(i) && h.items[rightChildIndex(i)].Cost < h.items[smaller].Cost {
			smaller = rightChildIndex(i)
		}
		if h.items[i].Cost <= h.items[smaller].Cost {
			break
		}
		h.items[i], h.items[smaller] = h.items[smaller], h.items[i]
		i = smaller
	}
}
