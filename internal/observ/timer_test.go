package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "3 packages")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "load" || r.Phases[0].Note != "3 packages" {
		t.Fatalf("unexpected report %+v", r)
	}
	if !strings.Contains(tm.Summary(), "// 3 packages") {
		t.Fatalf("summary missing note:\n%s", tm.Summary())
	}
}

func TestTimerAddAccumulates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("inspect", time.Millisecond)
		}()
	}
	wg.Wait()
	r := tm.Report()
	if len(r.Phases) != 1 {
		t.Fatalf("want one phase, got %+v", r.Phases)
	}
	if r.Phases[0].Runs != 8 || r.Phases[0].DurationMS != 8 {
		t.Fatalf("unexpected phase %+v", r.Phases[0])
	}
	if !strings.Contains(tm.Summary(), "x8") {
		t.Fatalf("summary missing run count:\n%s", tm.Summary())
	}
}

func TestTimerEmpty(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("empty timer report = %+v", r)
	}
	var nilTimer *Timer
	nilTimer.Add("x", time.Second)
	if idx := nilTimer.Begin("y"); idx != -1 {
		t.Fatalf("nil Begin = %d, want -1", idx)
	}
	nilTimer.End(-1, "")
}
