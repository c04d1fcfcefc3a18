package kernel

import (
	"sync"

	"tickos/fixedpoint"
)

// ThreadID identifies a thread for the lifetime of the kernel.
type ThreadID uint32

// State is the scheduling state of a thread.
type State uint8

const (
	// StateNew is a thread that has been allocated but not yet admitted.
	StateNew State = iota
	// StateReady is a thread on the ready list, eligible for the CPU.
	StateReady
	// StateRunning is a thread currently executing.
	StateRunning
	// StateSleeping is a thread parked on the sleep registry until its wake tick.
	StateSleeping
	// StateExited is a thread whose body has returned.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateSleeping:
		return "sleeping"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Thread is a schedulable unit of execution backed by a goroutine.
//
// A thread is on the ready list iff its state is StateReady and on the sleep
// registry iff its state is StateSleeping; it is never on both. All fields
// below the kernel pointer are guarded by the kernel mutex.
type Thread struct {
	id   ThreadID
	name string
	k    *Kernel

	state State

	// wakeTick is the absolute tick at or after which the thread becomes
	// runnable again. Meaningful only while state is StateSleeping.
	wakeTick Tick

	// cond parks the thread's goroutine during sleep. Its Locker is the
	// kernel mutex, so the wait releases the "interrupt mask" atomically
	// with the park.
	cond sync.Cond

	nice      int32
	recentCPU fixedpoint.Fixed
	sliceLeft int32
}

// ID returns the thread identifier.
func (t *Thread) ID() ThreadID { return t.id }

// Name returns the thread name.
func (t *Thread) Name() string { return t.name }

// State returns the current scheduling state.
func (t *Thread) State() State {
	t.k.mu.Lock()
	defer t.k.mu.Unlock()
	return t.state
}

// ThreadInfo is a point-in-time copy of a thread's scheduling state.
type ThreadInfo struct {
	ID        ThreadID
	Name      string
	State     State
	WakeTick  Tick
	RecentCPU fixedpoint.Fixed
}

// Context provides a running thread access to kernel operations. It is only
// valid on the goroutine the kernel started for that thread.
type Context struct {
	t *Thread
}

// ID returns the calling thread's identifier.
func (c *Context) ID() ThreadID { return c.t.id }

// Now returns the current global clock tick.
func (c *Context) Now() Tick { return c.t.k.Now() }

// Sleep suspends the calling thread for d ticks. It must only be called from
// the thread's own goroutine, never from the timer tick path. A zero or
// negative duration returns immediately without touching the sleep registry.
func (c *Context) Sleep(d Tick) { c.t.k.sleepTicks(c.t, d) }

// ShouldYield reports whether the thread has used up its time slice. The
// kernel never preempts a running goroutine; cooperative threads check this
// and call Yield at convenient points.
func (c *Context) ShouldYield() bool {
	k := c.t.k
	k.mu.Lock()
	defer k.mu.Unlock()
	return c.t.sliceLeft <= 0
}

// Yield surrenders the CPU and recharges the thread's time slice.
func (c *Context) Yield() { c.t.k.yield(c.t) }
