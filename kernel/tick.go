package kernel

// TimerTick is the periodic timer interrupt handler. It advances the global
// clock by exactly one, charges per-tick accounting, and scans the sleep
// registry only when the earliest-wake cache says a thread can be due; on
// every other tick the alarm cost is a single comparison.
//
// TimerTick is normally driven by Run at TicksPerSecond; tests call it
// directly to advance virtual time.
func (k *Kernel) TimerTick() {
	k.mu.Lock()
	k.ticks++
	k.stats.Ticks++

	k.accountTick()

	if k.ticks >= k.nextWake {
		k.wakeDue()
	}
	k.mu.Unlock()
}
