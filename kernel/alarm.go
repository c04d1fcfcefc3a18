package kernel

import "sort"

// sleepTicks suspends t for d ticks. Runs on t's own goroutine.
//
// The whole enqueue-then-park sequence happens under the kernel mutex, and
// the park itself (cond.Wait) releases the mutex atomically. The tick
// handler therefore either runs entirely before the insert or entirely after
// the park; it can never observe a thread that has computed its wake tick
// but is not yet in the registry, and it can never wake a thread before the
// thread has parked. That closes the lost-wakeup race by construction.
func (k *Kernel) sleepTicks(t *Thread, d Tick) {
	if d <= 0 {
		// Sleeping "until now" must not park: the wake scan for this tick
		// may already have run, so enqueueing could strand the thread.
		return
	}

	k.mu.Lock()
	k.enqueueSleeper(t, k.ticks+d)
	k.stats.Sleeps++
	k.trace.push(Event{Tick: k.ticks, Thread: t.id, Kind: EventSleep})

	for t.state == StateSleeping {
		t.cond.Wait()
	}

	// Woken: the scan put us on the ready list. Take the CPU back before
	// releasing the mask, mirroring the state that held on entry.
	k.dispatch(t)
	k.mu.Unlock()
}

// enqueueSleeper inserts t into the sleep registry at its sorted position
// and lowers the earliest-wake cache if needed. Lock held.
//
// Equal wake ticks keep FIFO order: the new entry goes after existing ones
// with the same key.
func (k *Kernel) enqueueSleeper(t *Thread, wake Tick) {
	t.wakeTick = wake
	t.state = StateSleeping

	i := sort.Search(len(k.sleepers), func(i int) bool {
		return k.sleepers[i].wakeTick > wake
	})
	k.sleepers = append(k.sleepers, nil)
	copy(k.sleepers[i+1:], k.sleepers[i:])
	k.sleepers[i] = t

	if wake < k.nextWake {
		k.nextWake = wake
	}
}

// wakeDue pops every registry entry whose wake tick has arrived and makes it
// ready, then recomputes the earliest-wake cache. Lock held; called from the
// tick handler only when the cache says something can be due.
//
// The registry is sorted, so the walk stops at the first future entry and is
// bounded by the number of threads due this tick. The pop path does not
// allocate.
func (k *Kernel) wakeDue() {
	k.stats.Scans++

	n := 0
	for n < len(k.sleepers) && k.sleepers[n].wakeTick <= k.ticks {
		t := k.sleepers[n]
		k.makeReady(t)
		k.stats.Wakes++
		k.trace.push(Event{Tick: k.ticks, Thread: t.id, Kind: EventWake})
		n++
	}
	if n > 0 {
		rest := copy(k.sleepers, k.sleepers[n:])
		for i := rest; i < len(k.sleepers); i++ {
			k.sleepers[i] = nil
		}
		k.sleepers = k.sleepers[:rest]
	}

	if len(k.sleepers) == 0 {
		k.nextWake = NoWake
	} else {
		k.nextWake = k.sleepers[0].wakeTick
	}
}
