package kernel

import (
	"testing"

	"tickos/fixedpoint"
)

func TestLoadAverageFirstSample(t *testing.T) {
	var l loadAverage
	l.update(1)
	want := fixedpoint.FromInt(1).DivInt(60)
	if l.avg != want {
		t.Fatalf("avg = %d, want %d (1/60)", l.avg, want)
	}
}

func TestLoadAverageConvergesTowardRunnable(t *testing.T) {
	var l loadAverage
	for i := 0; i < 200; i++ {
		l.update(2)
	}
	got := l.avg.MulInt(100).Round()
	if got < 185 || got > 200 {
		t.Fatalf("avg*100 = %d after 200 samples of 2, want near 200", got)
	}
}

func TestDecayCoefficient(t *testing.T) {
	l := loadAverage{avg: fixedpoint.FromInt(1)}
	// 2*1/(2*1+1) = 2/3
	got := l.decayCoef().MulInt(3).Round()
	if got != 2 {
		t.Fatalf("decay*3 = %d, want 2", got)
	}
}

func TestRunningThreadChargedPerTick(t *testing.T) {
	k := New()
	th := mkRunning(k, "busy")
	for i := 0; i < 10; i++ {
		k.TimerTick()
	}
	k.mu.Lock()
	got := th.recentCPU
	k.mu.Unlock()
	if got != fixedpoint.FromInt(10) {
		t.Fatalf("recentCPU = %d after 10 running ticks, want %d", got, fixedpoint.FromInt(10))
	}
}

func TestLoadAvg100AfterOneSecond(t *testing.T) {
	k := New()
	mkRunning(k, "busy")
	for i := 0; i < TicksPerSecond; i++ {
		k.TimerTick()
	}
	// One runnable thread folded in once: 100/60 rounds to 2.
	if got := k.LoadAvg100(); got != 2 {
		t.Fatalf("LoadAvg100 = %d, want 2", got)
	}
}
