package loop

import "github.com/san-kum/constellation/internal/dynamo"

// FrameQueue holds callbacks waiting for the next repaint. It is not safe for
// concurrent use.
type FrameQueue struct {
	next  dynamo.FrameID
	order []dynamo.FrameID
	fns   map[dynamo.FrameID]func()
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{fns: make(map[dynamo.FrameID]func())}
}

func (q *FrameQueue) RequestFrame(fn func()) dynamo.FrameID {
	q.next++
	q.order = append(q.order, q.next)
	q.fns[q.next] = fn
	return q.next
}

func (q *FrameQueue) CancelFrame(id dynamo.FrameID) {
	delete(q.fns, id)
}

// Dispatch runs the callbacks requested before this call and returns how many
// ran. Callbacks requested while dispatching wait for the next call.
func (q *FrameQueue) Dispatch() int {
	batch := q.order
	q.order = nil

	ran := 0
	for _, id := range batch {
		fn, ok := q.fns[id]
		if !ok {
			continue
		}
		delete(q.fns, id)
		fn()
		ran++
	}
	return ran
}

func (q *FrameQueue) Pending() bool { return len(q.fns) > 0 }

// Pump dispatches n repaints back to back and returns the callbacks run.
func (q *FrameQueue) Pump(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		ran += q.Dispatch()
	}
	return ran
}
