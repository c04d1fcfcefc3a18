package kernel

import "testing"

// mkRunning fabricates an admitted, dispatched thread so registry paths can
// be exercised without a backing goroutine.
func mkRunning(k *Kernel, name string) *Thread {
	t := k.newThread(name)
	k.mu.Lock()
	k.admit(t)
	k.dispatch(t)
	k.mu.Unlock()
	return t
}

func sleeperTicks(k *Kernel) []Tick {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]Tick, len(k.sleepers))
	for i, t := range k.sleepers {
		out[i] = t.wakeTick
	}
	return out
}

func TestRegistryStaysSorted(t *testing.T) {
	k := New()
	for _, wake := range []Tick{7, 3, 9, 3, 1, 7, 3} {
		th := mkRunning(k, "s")
		k.mu.Lock()
		k.enqueueSleeper(th, wake)
		k.mu.Unlock()

		got := sleeperTicks(k)
		for i := 1; i < len(got); i++ {
			if got[i-1] > got[i] {
				t.Fatalf("registry out of order after insert of %d: %v", wake, got)
			}
		}
	}
}

func TestEqualWakeTicksKeepInsertionOrder(t *testing.T) {
	k := New()
	a := mkRunning(k, "a")
	b := mkRunning(k, "b")
	c := mkRunning(k, "c")

	k.mu.Lock()
	k.enqueueSleeper(a, 5)
	k.enqueueSleeper(b, 5)
	k.enqueueSleeper(c, 5)
	order := []ThreadID{k.sleepers[0].id, k.sleepers[1].id, k.sleepers[2].id}
	k.mu.Unlock()

	want := []ThreadID{a.id, b.id, c.id}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("ties not FIFO: got %v, want %v", order, want)
		}
	}
}

func TestCacheTracksMinimum(t *testing.T) {
	k := New()
	if k.nextWake != NoWake {
		t.Fatalf("empty registry cache = %d, want NoWake", k.nextWake)
	}

	k.mu.Lock()
	k.enqueueSleeper(mkThreadLocked(k, "a"), 10)
	if k.nextWake != 10 {
		t.Fatalf("cache = %d, want 10", k.nextWake)
	}
	k.enqueueSleeper(mkThreadLocked(k, "b"), 4)
	if k.nextWake != 4 {
		t.Fatalf("cache = %d, want 4", k.nextWake)
	}
	k.enqueueSleeper(mkThreadLocked(k, "c"), 7)
	if k.nextWake != 4 {
		t.Fatalf("cache = %d after larger insert, want 4", k.nextWake)
	}

	// Wake everything due at tick 10 and verify the cache returns to the
	// sentinel.
	k.ticks = 10
	k.wakeDue()
	if len(k.sleepers) != 0 {
		t.Fatalf("registry not drained: %d left", len(k.sleepers))
	}
	if k.nextWake != NoWake {
		t.Fatalf("cache = %d after drain, want NoWake", k.nextWake)
	}
	k.mu.Unlock()
}

// mkThreadLocked is mkRunning for callers already holding the kernel mutex.
func mkThreadLocked(k *Kernel, name string) *Thread {
	t := k.newThread(name)
	k.admit(t)
	k.dispatch(t)
	return t
}

func TestScanStopsAtFirstFutureEntry(t *testing.T) {
	k := New()
	k.mu.Lock()
	early := mkThreadLocked(k, "early")
	late := mkThreadLocked(k, "late")
	k.enqueueSleeper(early, 2)
	k.enqueueSleeper(late, 8)

	k.ticks = 2
	k.wakeDue()
	if early.state != StateReady {
		t.Fatalf("due thread state = %s, want ready", early.state)
	}
	if late.state != StateSleeping {
		t.Fatalf("future thread state = %s, want sleeping", late.state)
	}
	if k.nextWake != 8 {
		t.Fatalf("cache = %d after partial wake, want 8", k.nextWake)
	}
	k.mu.Unlock()
}

func TestNoPrematureWake(t *testing.T) {
	k := New()
	th := mkRunning(k, "s")
	k.mu.Lock()
	k.enqueueSleeper(th, 10)
	k.mu.Unlock()

	for i := 0; i < 9; i++ {
		k.TimerTick()
		if s := th.State(); s != StateSleeping {
			t.Fatalf("state = %s at tick %d, want sleeping until 10", s, i+1)
		}
	}
	k.TimerTick()
	if s := th.State(); s != StateReady {
		t.Fatalf("state = %s at tick 10, want ready", s)
	}
	if w := k.Stats().Wakes; w != 1 {
		t.Fatalf("wakes = %d, want 1", w)
	}
}

func TestScanSkippedWhileNothingDue(t *testing.T) {
	k := New()
	th := mkRunning(k, "s")
	k.mu.Lock()
	k.enqueueSleeper(th, 100)
	k.mu.Unlock()

	for i := 0; i < 99; i++ {
		k.TimerTick()
	}
	if s := k.Stats(); s.Scans != 0 {
		t.Fatalf("scans = %d before anything due, want 0", s.Scans)
	}
	k.TimerTick()
	if s := k.Stats(); s.Scans != 1 || s.Wakes != 1 {
		t.Fatalf("scans = %d wakes = %d at wake tick, want 1/1", s.Scans, s.Wakes)
	}
}

func TestScanIdempotentAtSameClock(t *testing.T) {
	k := New()
	k.mu.Lock()
	k.enqueueSleeper(mkThreadLocked(k, "a"), 3)
	k.enqueueSleeper(mkThreadLocked(k, "b"), 3)

	k.ticks = 3
	k.wakeDue()
	wakes := k.stats.Wakes
	k.wakeDue()
	if k.stats.Wakes != wakes {
		t.Fatalf("second scan woke threads: %d -> %d", wakes, k.stats.Wakes)
	}
	if k.nextWake != NoWake {
		t.Fatalf("cache = %d after idempotent rescan, want NoWake", k.nextWake)
	}
	k.mu.Unlock()
}

func TestClockAdvancesByExactlyOne(t *testing.T) {
	k := New()
	for i := 1; i <= 5; i++ {
		k.TimerTick()
		if got := k.Now(); got != Tick(i) {
			t.Fatalf("clock = %d after %d ticks", got, i)
		}
	}
}
