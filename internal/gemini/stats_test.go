package gemini

import (
	"testing"
	"time"
)

func TestCallStats_EmptySnapshot(t *testing.T) {
	s := NewCallStats(time.Hour)
	snap := s.Snapshot()
	if snap.Count != 0 {
		t.Errorf("expected zero count, got %d", snap.Count)
	}
}

func TestCallStats_BasicAggregates(t *testing.T) {
	s := NewCallStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400} {
		s.Record(ms)
	}
	snap := s.Snapshot()

	if snap.Count != 4 {
		t.Fatalf("expected count 4, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 400 {
		t.Errorf("expected min 100 / max 400, got %d / %d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 250 {
		t.Errorf("expected avg 250, got %v", snap.AvgMs)
	}
	if snap.P50Ms != 250 {
		t.Errorf("expected p50 250, got %v", snap.P50Ms)
	}
}

func TestCallStats_NegativeDurationClamped(t *testing.T) {
	s := NewCallStats(time.Hour)
	s.Record(-50)
	snap := s.Snapshot()
	if snap.MinMs != 0 {
		t.Errorf("expected negative duration clamped to 0, got %d", snap.MinMs)
	}
}

func TestCallStats_WindowEviction(t *testing.T) {
	s := NewCallStats(time.Nanosecond)
	s.Record(100)
	time.Sleep(time.Millisecond)
	snap := s.Snapshot()
	if snap.Count != 0 {
		t.Errorf("expected sample outside window to be evicted, got count %d", snap.Count)
	}
}

func TestPercentile_Interpolation(t *testing.T) {
	values := []int64{0, 100}
	if got := percentile(values, 50); got != 50 {
		t.Errorf("expected interpolated p50 of 50, got %v", got)
	}
	if got := percentile(values, 0); got != 0 {
		t.Errorf("expected p0 of 0, got %v", got)
	}
	if got := percentile(values, 100); got != 100 {
		t.Errorf("expected p100 of 100, got %v", got)
	}
}
