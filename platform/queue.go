package platform

import "github.com/noriapi/prevent-alt-win-menu/keyevent"

// eventQueue decouples the hook callback from the consumer. The hook
// proc runs inside the OS's dispatch of every hardware keystroke and
// must return immediately; a send that waits on the consumer would
// stall keyboard delivery system-wide. The pump goroutine therefore
// buffers events in memory without bound, so the producer side never
// blocks while the consumer still sees every event in FIFO order.
type eventQueue struct {
	in  chan keyevent.KeyEvent
	out chan keyevent.KeyEvent
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		in:  make(chan keyevent.KeyEvent, 64),
		out: make(chan keyevent.KeyEvent),
	}
	go q.pump()
	return q
}

// push enqueues an event. The pump goroutine is always ready to drain
// in, so this only blocks for the duration of a channel handoff.
func (q *eventQueue) push(ev keyevent.KeyEvent) {
	q.in <- ev
}

// events returns the ordered consumer side of the queue.
func (q *eventQueue) events() <-chan keyevent.KeyEvent {
	return q.out
}

func (q *eventQueue) pump() {
	var backlog []keyevent.KeyEvent
	for {
		if len(backlog) == 0 {
			ev, ok := <-q.in
			if !ok {
				close(q.out)
				return
			}
			backlog = append(backlog, ev)
		}

		select {
		case ev, ok := <-q.in:
			if !ok {
				// Drain what is left before closing.
				for _, pending := range backlog {
					q.out <- pending
				}
				close(q.out)
				return
			}
			backlog = append(backlog, ev)
		case q.out <- backlog[0]:
			backlog = backlog[1:]
			if len(backlog) == 0 {
				backlog = nil
			}
		}
	}
}

// closeIn ends the queue once the in side is finished with it.
func (q *eventQueue) closeIn() {
	close(q.in)
}
