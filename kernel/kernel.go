// Package kernel implements a minimal cooperative thread scheduler with a
// tick-driven alarm clock.
//
// Threads are goroutines that interact through a single Kernel value. The
// kernel mutex plays the role of the interrupt mask on a single-CPU machine:
// every thread-context read-modify-write of scheduler state holds it for the
// entire sequence, and the timer tick handler holds it for the whole tick.
// The alarm path (Context.Sleep, TimerTick, the registry scan) is written so
// that a wakeup can never be lost: a sleeping thread inserts itself,
// updates the earliest-wake cache, and parks in one critical section.
package kernel

import (
	"context"
	"math"
	"runtime"
	"sync"
)

// Tick is the kernel time unit, advanced by one per timer interrupt.
type Tick int64

// NoWake is the earliest-wake cache value when nothing is sleeping.
const NoWake Tick = math.MaxInt64

// TicksPerSecond is the nominal timer interrupt frequency.
const TicksPerSecond = 100

// timeSlice is the number of ticks a thread may run before ShouldYield
// reports true.
const timeSlice = 4

// Stats are cumulative scheduler counters.
type Stats struct {
	Ticks  uint64 // timer interrupts handled
	Sleeps uint64 // threads that entered the sleep registry
	Scans  uint64 // registry scans actually performed
	Wakes  uint64 // threads moved sleeping -> ready
	Drops  uint64 // trace events dropped on ring overflow
}

// Kernel owns all scheduler state. Create one with New; there is no
// teardown, matching a kernel-lifetime singleton.
type Kernel struct {
	// mu is the interrupt-mask equivalent: it guards every field below and
	// must be held across any multi-step state transition, including the
	// park in the sleep path.
	mu sync.Mutex

	ticks  Tick
	nextID ThreadID

	threads []*Thread

	// ready is the FIFO ready list. Policy beyond FIFO ordering is out of
	// scope here; the alarm only needs "make eligible again".
	ready []*Thread

	// sleepers is ordered ascending by wakeTick with FIFO order among equal
	// keys. nextWake caches sleepers[0].wakeTick (NoWake when empty) so the
	// tick handler can skip the scan with one comparison.
	sleepers []*Thread
	nextWake Tick

	loadAvg loadAverage
	stats   Stats
	trace   eventRing

	wg sync.WaitGroup
}

// New returns an initialized kernel with an empty sleep registry and the
// clock at zero.
func New() *Kernel {
	return &Kernel{nextWake: NoWake}
}

// Spawn admits a new thread running fn on its own goroutine. The thread
// starts ready and dispatches itself; it exits when fn returns.
func (k *Kernel) Spawn(name string, fn func(*Context)) *Thread {
	t := k.newThread(name)

	k.mu.Lock()
	k.admit(t)
	k.mu.Unlock()

	k.wg.Add(1)
	go func() {
		defer k.wg.Done()

		k.mu.Lock()
		k.dispatch(t)
		k.mu.Unlock()

		fn(&Context{t: t})

		k.mu.Lock()
		t.state = StateExited
		k.trace.push(Event{Tick: k.ticks, Thread: t.id, Kind: EventExit})
		k.mu.Unlock()
	}()
	return t
}

// newThread allocates a thread bound to this kernel. Split from Spawn so
// tests can build registry entries without goroutines.
func (k *Kernel) newThread(name string) *Thread {
	t := &Thread{name: name, k: k, sliceLeft: timeSlice}
	t.cond.L = &k.mu
	return t
}

// admit assigns an ID and places the thread on the ready list. Lock held.
func (k *Kernel) admit(t *Thread) {
	t.id = k.nextID
	k.nextID++
	k.threads = append(k.threads, t)
	t.state = StateReady
	k.ready = append(k.ready, t)
	k.trace.push(Event{Tick: k.ticks, Thread: t.id, Kind: EventSpawn})
}

// dispatch moves a ready thread to running. Lock held.
func (k *Kernel) dispatch(t *Thread) {
	k.readyRemove(t)
	t.state = StateRunning
	t.sliceLeft = timeSlice
}

// makeReady moves a thread onto the ready list and signals its goroutine if
// it is parked. Lock held.
func (k *Kernel) makeReady(t *Thread) {
	t.state = StateReady
	k.ready = append(k.ready, t)
	t.cond.Signal()
}

func (k *Kernel) readyRemove(t *Thread) {
	for i, r := range k.ready {
		if r == t {
			copy(k.ready[i:], k.ready[i+1:])
			k.ready[len(k.ready)-1] = nil
			k.ready = k.ready[:len(k.ready)-1]
			return
		}
	}
}

// yield puts the thread briefly at the back of the ready list, lets the Go
// scheduler run someone else, then re-dispatches with a fresh time slice.
func (k *Kernel) yield(t *Thread) {
	k.mu.Lock()
	k.makeReady(t)
	k.mu.Unlock()

	runtime.Gosched()

	k.mu.Lock()
	k.dispatch(t)
	k.mu.Unlock()
}

// Wait blocks until every spawned thread has exited.
func (k *Kernel) Wait() { k.wg.Wait() }

// Now returns the current global clock tick.
func (k *Kernel) Now() Tick {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ticks
}

// Stats returns a copy of the cumulative scheduler counters.
func (k *Kernel) Stats() Stats {
	k.mu.Lock()
	s := k.stats
	k.mu.Unlock()
	s.Drops = k.trace.dropped()
	return s
}

// Snapshot returns a point-in-time copy of every thread's scheduling state,
// in spawn order.
func (k *Kernel) Snapshot() []ThreadInfo {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]ThreadInfo, len(k.threads))
	for i, t := range k.threads {
		out[i] = ThreadInfo{
			ID:        t.id,
			Name:      t.name,
			State:     t.state,
			WakeTick:  t.wakeTick,
			RecentCPU: t.recentCPU,
		}
	}
	return out
}

// Run pumps hardware ticks into TimerTick until ctx is done or the tick
// channel closes. The channel is typically hal.Time.Ticks.
func (k *Kernel) Run(ctx context.Context, ticks <-chan uint64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			k.TimerTick()
		}
	}
}
