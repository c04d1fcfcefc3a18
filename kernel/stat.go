package kernel

import "tickos/fixedpoint"

// loadAverage tracks the 4.4BSD-style system load: an exponentially weighted
// average of the number of runnable threads, recomputed once per second.
// Scheduling decisions do not consume it here; it exists for reporting and
// as the fixed-point consumer.
type loadAverage struct {
	avg fixedpoint.Fixed
}

// update folds the current runnable count into the average:
// avg = (59/60)*avg + (1/60)*runnable.
func (l *loadAverage) update(runnable int32) {
	weighted := l.avg.MulInt(59).DivInt(60)
	l.avg = weighted.Add(fixedpoint.FromInt(runnable).DivInt(60))
}

// decayCoef returns 2*avg/(2*avg+1), the per-second decay applied to each
// thread's recent CPU.
func (l *loadAverage) decayCoef() fixedpoint.Fixed {
	twice := l.avg.MulInt(2)
	return twice.Div(twice.AddInt(1))
}

// LoadAvg returns the current load average.
func (k *Kernel) LoadAvg() fixedpoint.Fixed {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.loadAvg.avg
}

// LoadAvg100 returns the load average times 100, rounded to nearest. This is
// the conventional reporting form for fixed-point load figures.
func (k *Kernel) LoadAvg100() int32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.loadAvg.avg.MulInt(100).Round()
}

// accountTick performs the per-tick scheduler bookkeeping. Lock held.
//
// Running threads are charged one tick of recent CPU and burn their time
// slice. Once per second the load average and every thread's recent CPU are
// recomputed; that pass is O(threads) but runs at 1/TicksPerSecond of the
// tick rate.
func (k *Kernel) accountTick() {
	for _, t := range k.threads {
		if t.state == StateRunning {
			t.recentCPU = t.recentCPU.AddInt(1)
			if t.sliceLeft > 0 {
				t.sliceLeft--
			}
		}
	}

	if k.ticks%TicksPerSecond != 0 {
		return
	}

	runnable := int32(0)
	for _, t := range k.threads {
		if t.state == StateReady || t.state == StateRunning {
			runnable++
		}
	}
	k.loadAvg.update(runnable)

	coef := k.loadAvg.decayCoef()
	for _, t := range k.threads {
		if t.state == StateExited {
			continue
		}
		t.recentCPU = coef.Mul(t.recentCPU).AddInt(t.nice)
	}
}
