package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	Reset()

	for i := 0; i < 3; i++ {
		stop := Track("world.Test")
		time.Sleep(time.Millisecond)
		stop()
	}

	if got := Calls("world.Test"); got != 3 {
		t.Errorf("Expected 3 calls, got %d", got)
	}
	if d := Snapshot()["world.Test"]; d < 3*time.Millisecond {
		t.Errorf("Expected at least 3ms recorded, got %v", d)
	}
	if d := SumWithPrefix("world."); d != Snapshot()["world.Test"] {
		t.Errorf("SumWithPrefix mismatch: %v", d)
	}
	if d := SumWithPrefix("other."); d != 0 {
		t.Errorf("Expected zero for unknown prefix, got %v", d)
	}
}

func TestCounters(t *testing.T) {
	Reset()
	Add("samples", 5)
	Add("samples", 7)
	if got := Counter("samples"); got != 12 {
		t.Errorf("Expected counter 12, got %d", got)
	}
	Reset()
	if got := Counter("samples"); got != 0 {
		t.Errorf("Expected counter reset to 0, got %d", got)
	}
}

func TestTopNOrdering(t *testing.T) {
	Reset()
	mu.Lock()
	totals["a"] = 5 * time.Millisecond
	totals["b"] = 20 * time.Millisecond
	totals["c"] = 1500 * time.Microsecond
	calls["b"] = 2
	mu.Unlock()

	got := TopN(2)
	want := "b:20ms x2, a:5ms x0"
	if got != want {
		t.Errorf("TopN(2) = %q, want %q", got, want)
	}
	if !strings.Contains(TopN(10), "c:1.5ms") {
		t.Errorf("Expected fractional millisecond formatting in %q", TopN(10))
	}
}
