package pipeline

import "testing"

func TestRecentArbsSeenAfterRecord(t *testing.T) {
	r := NewRecentArbs(2)
	if r.Seen("coin-a") {
		t.Fatalf("empty ring should not report coin as seen")
	}
	r.Record("coin-a")
	if !r.Seen("coin-a") {
		t.Errorf("expected coin-a to be seen after Record")
	}
}

func TestRecentArbsEvictsOldestOnWrap(t *testing.T) {
	r := NewRecentArbs(2)
	r.Record("coin-a")
	r.Record("coin-b")
	r.Record("coin-c") // wraps, evicting coin-a's slot
	if r.Seen("coin-a") {
		t.Errorf("expected coin-a evicted after ring wrapped")
	}
	if !r.Seen("coin-b") || !r.Seen("coin-c") {
		t.Errorf("expected coin-b and coin-c still present")
	}
}

func TestRecentArbsEvictSyncsWithExpiry(t *testing.T) {
	r := NewRecentArbs(4)
	r.Record("coin-a")
	r.Evict("coin-a")
	if r.Seen("coin-a") {
		t.Errorf("expected coin-a no longer seen after explicit Evict")
	}
}

func TestRecentArbsHandlesZeroCapacity(t *testing.T) {
	r := NewRecentArbs(0)
	r.Record("coin-a") // must not panic
	if r.Seen("coin-a") {
		t.Errorf("a zero-capacity ring should never report anything as seen")
	}
}
