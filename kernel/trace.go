package kernel

import "sync/atomic"

// EventKind classifies a scheduler trace event.
type EventKind uint8

const (
	EventSpawn EventKind = iota + 1
	EventSleep
	EventWake
	EventExit
)

func (e EventKind) String() string {
	switch e {
	case EventSpawn:
		return "spawn"
	case EventSleep:
		return "sleep"
	case EventWake:
		return "wake"
	case EventExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Event is one scheduler transition, stamped with the clock at which it
// happened.
type Event struct {
	Tick   Tick
	Thread ThreadID
	Kind   EventKind
}

const traceSlots = 256

// eventRing is a fixed-size single-consumer trace buffer. Producers always
// hold the kernel mutex, so writes are serialized; the consumer (PollEvents)
// runs outside the mutex and synchronizes through the atomic cursors. A full
// ring drops the new event rather than blocking the tick handler.
type eventRing struct {
	head  atomic.Uint32
	tail  atomic.Uint32
	drops atomic.Uint64
	slots [traceSlots]Event
}

func (r *eventRing) push(ev Event) {
	head := r.head.Load()
	if head-r.tail.Load() >= traceSlots {
		r.drops.Add(1)
		return
	}
	r.slots[head%traceSlots] = ev
	r.head.Store(head + 1)
}

func (r *eventRing) pop() (Event, bool) {
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return Event{}, false
	}
	ev := r.slots[tail%traceSlots]
	r.tail.Store(tail + 1)
	return ev, true
}

func (r *eventRing) dropped() uint64 { return r.drops.Load() }

// PollEvents drains buffered trace events into buf and returns the count.
// It is safe to call from a single consumer goroutine concurrently with the
// scheduler; it never blocks.
func (k *Kernel) PollEvents(buf []Event) int {
	n := 0
	for n < len(buf) {
		ev, ok := k.trace.pop()
		if !ok {
			break
		}
		buf[n] = ev
		n++
	}
	return n
}
