package sweepline

import (
	"fmt"
	"io"
	"strings"
)

// Event is an occurrence at a sweep coordinate. It is one of StartEvent, FinishEvent or IntersectionEvent.
type Event interface {
	// Y returns the height of the sweep line at which the event fires.
	Y() float64
	rank() int
}

// StartEvent fires at the top point of a segment, when the segment enters the sweep line.
type StartEvent struct {
	Segment Segment
	Index   int // index into the input
}

// FinishEvent fires at the bottom point of a segment, when the segment leaves the sweep line.
type FinishEvent struct {
	Segment Segment
	Index   int
}

// IntersectionEvent fires where two segments cross.
type IntersectionEvent struct {
	Point          Point
	A, B           Segment
	IndexA, IndexB int
}

func (e StartEvent) Y() float64        { return e.Segment.top.Y }
func (e FinishEvent) Y() float64       { return e.Segment.bottom.Y }
func (e IntersectionEvent) Y() float64 { return e.Point.Y }

// events at the same height are handled in rank order
func (StartEvent) rank() int        { return 0 }
func (IntersectionEvent) rank() int { return 1 }
func (FinishEvent) rank() int       { return 2 }

func (e StartEvent) String() string {
	return fmt.Sprintf("start(%d %v)", e.Index, e.Segment)
}

func (e FinishEvent) String() string {
	return fmt.Sprintf("finish(%d %v)", e.Index, e.Segment)
}

func (e IntersectionEvent) String() string {
	return fmt.Sprintf("intersection(%d×%d %v)", e.IndexA, e.IndexB, e.Point)
}

type queueItem struct {
	Event
	seq int
}

// sweepEvents is a heap priority queue of sweep events, the highest event comes first.
type sweepEvents struct {
	items []queueItem
	seq   int
}

func (q *sweepEvents) Len() int {
	return len(q.items)
}

func (q *sweepEvents) less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if ya, yb := a.Y(), b.Y(); ya != yb {
		return yb < ya // sort top to bottom
	} else if ra, rb := a.rank(), b.rank(); ra != rb {
		return ra < rb
	}
	return a.seq < b.seq
}

func (q *sweepEvents) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

// Seed adds the start and finish events of all segments and heapifies the queue.
func (q *sweepEvents) Seed(segs []Segment) {
	for i, s := range segs {
		q.items = append(q.items, queueItem{StartEvent{s, i}, q.seq}, queueItem{FinishEvent{s, i}, q.seq + 1})
		q.seq += 2
	}
	n := len(q.items)
	for i := n/2 - 1; 0 <= i; i-- {
		q.down(i, n)
	}
}

func (q *sweepEvents) Push(e Event) {
	q.items = append(q.items, queueItem{e, q.seq})
	q.seq++
	q.up(len(q.items) - 1)
}

func (q *sweepEvents) Pop() Event {
	n := len(q.items) - 1
	q.swap(0, n)
	q.down(0, n)

	e := q.items[n].Event
	q.items[n] = queueItem{} // help the GC
	q.items = q.items[:n]
	return e
}

// from container/heap
func (q *sweepEvents) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !q.less(j, i) {
			break
		}
		q.swap(i, j)
		j = i
	}
}

func (q *sweepEvents) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if n <= j1 || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && q.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !q.less(j, i) {
			break
		}
		q.swap(i, j)
		i = j
	}
}

func (q *sweepEvents) Print(w io.Writer) {
	q2 := &sweepEvents{items: make([]queueItem, len(q.items))}
	copy(q2.items, q.items)
	for k := 0; 0 < q2.Len(); k++ {
		fmt.Fprintln(w, k, q2.Pop())
	}
}

func (q *sweepEvents) String() string {
	sb := strings.Builder{}
	q.Print(&sb)
	str := sb.String()
	if 0 < len(str) {
		str = str[:len(str)-1]
	}
	return str
}
