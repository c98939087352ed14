// Package frame schedules callbacks to run once on the next display refresh, in the manner of a
// browser's animation-frame queue. The host loop calls RunFrame once per refresh.
//
// A Scheduler is not safe for concurrent use; everything runs on the render thread.
package frame

// ID identifies a requested callback.
type ID uint64

// Scheduler queues one-shot callbacks for the next frame.
type Scheduler struct {
	next    ID
	order   []ID
	pending map[ID]func()
	frames  uint64
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[ID]func())}
}

// Request queues fn to run on the next RunFrame. Requests made while a frame is running are
// deferred to the following frame.
func (s *Scheduler) Request(fn func()) ID {
	s.next++
	s.order = append(s.order, s.next)
	s.pending[s.next] = fn
	return s.next
}

// Cancel drops a queued callback. Cancelling an ID that already ran or was never issued is a no-op.
func (s *Scheduler) Cancel(id ID) {
	delete(s.pending, id)
}

// Pending returns the number of callbacks waiting for a frame.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Frames returns how many times RunFrame has been called.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// RunFrame runs every callback queued before the call, in request order, and returns how many ran.
// A callback cancelled by an earlier callback of the same frame does not run.
func (s *Scheduler) RunFrame() int {
	s.frames++
	batch := s.order
	s.order = nil
	ran := 0
	for _, id := range batch {
		fn, ok := s.pending[id]
		if !ok {
			continue
		}
		delete(s.pending, id)
		fn()
		ran++
	}
	return ran
}
