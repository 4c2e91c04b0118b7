package sweepline

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// statusNode is a node in the sweep status tree. Its position in the in-order sequence is the left-to-right position of its segment on the sweep line.
type statusNode struct {
	parent, left, right *statusNode
	height              int

	index int // index into the input, -1 when unused
	seg   Segment
}

func (n *statusNode) Prev() *statusNode {
	// go left
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right // find the right-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.left == n {
		n = n.parent // find first parent for which we're right
	}
	return n.parent // can be nil
}

func (n *statusNode) Next() *statusNode {
	// go right
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left // find the left-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.right == n {
		n = n.parent // find first parent for which we're left
	}
	return n.parent // can be nil
}

func (n *statusNode) balance() int {
	r := 0
	if n.left != nil {
		r -= n.left.height
	}
	if n.right != nil {
		r += n.right.height
	}
	return r
}

func (n *statusNode) updateHeight() {
	n.height = 0
	if n.left != nil {
		n.height = n.left.height
	}
	if n.right != nil && n.height < n.right.height {
		n.height = n.right.height
	}
	n.height++
}

func (n *statusNode) swapChild(a, b *statusNode) {
	if n.right == a {
		n.right = b
	} else {
		n.left = b
	}
	if b != nil {
		b.parent = n
	}
}

func (a *statusNode) rotateLeft() *statusNode {
	b := a.right
	if a.parent != nil {
		a.parent.swapChild(a, b)
	} else {
		b.parent = nil
	}
	a.parent = b
	if a.right = b.left; a.right != nil {
		a.right.parent = a
	}
	b.left = a
	return b
}

func (a *statusNode) rotateRight() *statusNode {
	b := a.left
	if a.parent != nil {
		a.parent.swapChild(a, b)
	} else {
		b.parent = nil
	}
	a.parent = b
	if a.left = b.right; a.left != nil {
		a.left.parent = a
	}
	b.right = a
	return b
}

func (n *statusNode) Print(w io.Writer, indent int) {
	if n.right != nil {
		n.right.Print(w, indent+1)
	} else if n.left != nil {
		fmt.Fprintf(w, "%vnil\n", strings.Repeat("  ", indent+1))
	}
	fmt.Fprintf(w, "%v%d %v\n", strings.Repeat("  ", indent), n.index, n.seg)
	if n.left != nil {
		n.left.Print(w, indent+1)
	} else if n.right != nil {
		fmt.Fprintf(w, "%vnil\n", strings.Repeat("  ", indent+1))
	}
}

// sweepStatus holds the segments that cross the sweep line, ordered from left to right. It is an AVL tree where each input segment has a stable handle to its node, so that finding, removing and swapping segments does not require searching.
type sweepStatus struct {
	root    *statusNode
	handles []*statusNode // by segment index
	size    int
	pool    *sync.Pool

	// compare returns -1 if a must be placed left of b and 1 otherwise, a is the segment being inserted
	compare func(a, b Segment) int
}

func newSweepStatus(n int, compare func(a, b Segment) int) *sweepStatus {
	return &sweepStatus{
		handles: make([]*statusNode, n),
		pool:    &sync.Pool{New: func() any { return &statusNode{} }},
		compare: compare,
	}
}

func (s *sweepStatus) newNode(index int, seg Segment) *statusNode {
	n := s.pool.Get().(*statusNode)
	n.parent = nil
	n.left = nil
	n.right = nil
	n.height = 1
	n.index = index
	n.seg = seg
	s.handles[index] = n
	return n
}

func (s *sweepStatus) returnNode(n *statusNode) {
	s.handles[n.index] = nil
	n.index = -1
	n.seg = Segment{}
	s.pool.Put(n)
}

func (s *sweepStatus) rebalance(n *statusNode) {
	for {
		oheight := n.height
		if balance := n.balance(); balance == 2 {
			// Tree is excessively right-heavy, rotate it to the left.
			if n.right != nil && n.right.balance() < 0 {
				// Right tree is left-heavy, which would cause the next rotation to result in
				// overall left-heaviness. Rotate the right tree to the right to counteract this.
				n.right = n.right.rotateRight()
				n.right.right.updateHeight()
			}
			n = n.rotateLeft()
			n.left.updateHeight()
		} else if balance == -2 {
			// Tree is excessively left-heavy, rotate it to the right
			if n.left != nil && n.left.balance() > 0 {
				// The left tree is right-heavy, which would cause the next rotation to result in
				// overall right-heaviness. Rotate the left tree to the left to compensate.
				n.left = n.left.rotateLeft()
				n.left.left.updateHeight()
			}
			n = n.rotateRight()
			n.right.updateHeight()
		} else if balance < -2 || 2 < balance {
			panic("Tree too far out of shape!")
		}

		n.updateHeight()
		if n.parent == nil {
			s.root = n
			return
		}
		if oheight == n.height {
			return
		}
		n = n.parent
	}
}

// Len returns the number of segments on the sweep line.
func (s *sweepStatus) Len() int {
	return s.size
}

func (s *sweepStatus) First() *statusNode {
	if s.root == nil {
		return nil
	}
	n := s.root
	for n.left != nil {
		n = n.left
	}
	return n
}

func (s *sweepStatus) Last() *statusNode {
	if s.root == nil {
		return nil
	}
	n := s.root
	for n.right != nil {
		n = n.right
	}
	return n
}

// Node returns the node of the segment with the given input index. It panics if the segment is not on the sweep line.
func (s *sweepStatus) Node(index int) *statusNode {
	if index < 0 || len(s.handles) <= index || s.handles[index] == nil {
		panic(fmt.Sprintf("segment %d not in sweep status", index))
	}
	return s.handles[index]
}

// Contains returns true if the segment with the given input index is on the sweep line.
func (s *sweepStatus) Contains(index int) bool {
	return 0 <= index && index < len(s.handles) && s.handles[index] != nil
}

// Insert adds a segment after all segments that it does not compare less to.
func (s *sweepStatus) Insert(index int, seg Segment) *statusNode {
	if s.handles[index] != nil {
		panic(fmt.Sprintf("segment %d already in sweep status", index))
	}
	s.size++
	if s.root == nil {
		s.root = s.newNode(index, seg)
		return s.root
	}

	n := s.root
	cmp := 0
	for {
		if cmp = s.compare(seg, n.seg); cmp < 0 {
			if n.left == nil {
				break
			}
			n = n.left
		} else {
			if n.right == nil {
				break
			}
			n = n.right
		}
	}

	rebalance := false
	if cmp < 0 {
		// lower
		n.left = s.newNode(index, seg)
		n.left.parent = n
		rebalance = n.right == nil
		n = n.left
	} else {
		// higher
		n.right = s.newNode(index, seg)
		n.right.parent = n
		rebalance = n.left == nil
		n = n.right
	}

	if rebalance {
		n.height++
		if n.parent != nil {
			s.rebalance(n.parent)
		}
	}
	return n
}

// Remove removes the node from the tree.
func (s *sweepStatus) Remove(n *statusNode) {
	s.size--
	var o *statusNode
	for {
		if n.height == 1 {
			o = n.parent
			if o != nil {
				o.swapChild(n, nil)
				s.rebalance(o)
			} else {
				s.root = nil
			}
			s.returnNode(n)
			return
		} else if n.right != nil {
			o = n.right
			for o.left != nil {
				o = o.left
			}
		} else if n.left != nil {
			o = n.left
			for o.right != nil {
				o = o.right
			}
		} else {
			panic("Impossible")
		}
		s.exchange(n, o)
		n = o
	}
}

// Swap exchanges the positions of two segments on the sweep line.
func (s *sweepStatus) Swap(a, b *statusNode) {
	s.exchange(a, b)
}

func (s *sweepStatus) exchange(a, b *statusNode) {
	a.index, b.index = b.index, a.index
	a.seg, b.seg = b.seg, a.seg
	s.handles[a.index], s.handles[b.index] = a, b
}

// Segments returns the segments on the sweep line from left to right.
func (s *sweepStatus) Segments() []Segment {
	segs := make([]Segment, 0, s.size)
	for n := s.First(); n != nil; n = n.Next() {
		segs = append(segs, n.seg)
	}
	return segs
}

// Indices returns the input indices of the segments on the sweep line from left to right.
func (s *sweepStatus) Indices() []int {
	indices := make([]int, 0, s.size)
	for n := s.First(); n != nil; n = n.Next() {
		indices = append(indices, n.index)
	}
	return indices
}

func (s *sweepStatus) String() string {
	if s.root == nil {
		return "nil"
	}

	sb := strings.Builder{}
	s.root.Print(&sb, 0)
	str := sb.String()
	if 0 < len(str) {
		str = str[:len(str)-1]
	}
	return str
}
