// Package eventqueue implements the platform's discrete-event simulation
// kernel: a deadline-ordered queue of scheduled callbacks driving a
// monotonically non-decreasing virtual clock.
package eventqueue

import "container/heap"

// Callback is invoked when a scheduled event's deadline is reached. Context
// is opaque to the queue; the caller is responsible for its shape.
type Callback func(context any)

// event is a single scheduled callback. seq breaks ties between events
// sharing a deadline in scheduling order ("ties break by
// insertion order").
type event struct {
	deadline uint64
	seq      uint64
	callback Callback
	context  any
	index    int
}

type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	e := x.(*event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is the event-driven simulation kernel. It is not safe for concurrent
// use; the platform serializes all mutation on a single executor.
type Queue struct {
	heap        eventHeap
	currentTime uint64
	nextSeq     uint64
}

// New returns an initialized queue with an empty heap and the clock at 0.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.heap)
	return q
}

// Now returns the current virtual clock value.
func (q *Queue) Now() uint64 {
	return q.currentTime
}

// Schedule inserts a callback at deadline (Now()+delay). Events with delay 0
// are still ordered after any event already due at the current clock value
// with an earlier sequence number, but will run before events scheduled
// later at the same deadline.
func (q *Queue) Schedule(delay uint64, callback Callback, context any) {
	e := &event{
		deadline: q.currentTime + delay,
		seq:      q.nextSeq,
		callback: callback,
		context:  context,
	}
	q.nextSeq++
	heap.Push(&q.heap, e)
}

// ProcessNext pops the earliest-deadline event, advances the clock to its
// deadline, and invokes its callback. Returns false if the queue is empty.
// A callback that panics is not recovered: a panicking callback aborts
// the simulation.
func (q *Queue) ProcessNext() bool {
	if q.heap.Len() == 0 {
		return false
	}
	e := heap.Pop(&q.heap).(*event)
	q.currentTime = e.deadline
	e.callback(e.context)
	return true
}

// Pending reports whether any event remains scheduled.
func (q *Queue) Pending() bool {
	return q.heap.Len() > 0
}

// DrainUntil repeatedly processes events until isDone reports true or the
// queue empties. This is the orchestrator's only wait primitive: callers
// drain events until a device's busy flag clears.
func (q *Queue) DrainUntil(isDone func() bool) {
	for !isDone() && q.ProcessNext() {
	}
}
