package gemini

import (
	"sort"
	"sync"
	"time"
)

// Snapshot is a point-in-time aggregate of generation-call latencies.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
}

type callSample struct {
	at time.Time
	ms int64
}

// CallStats tracks recent generation-call latencies within a rolling window.
type CallStats struct {
	mu     sync.Mutex
	window time.Duration
	calls  []callSample
}

func NewCallStats(window time.Duration) *CallStats {
	if window <= 0 {
		window = time.Hour
	}
	return &CallStats{window: window}
}

func (s *CallStats) Record(durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)
	s.calls = append(s.calls, callSample{at: now, ms: durationMs})
}

func (s *CallStats) Snapshot() Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)

	if len(s.calls) == 0 {
		return Snapshot{}
	}

	values := make([]int64, len(s.calls))
	var sum int64
	for i, c := range s.calls {
		values[i] = c.ms
		sum += c.ms
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return Snapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
	}
}

func (s *CallStats) evictLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	keep := s.calls[:0]
	for _, c := range s.calls {
		if !c.at.Before(cutoff) {
			keep = append(keep, c)
		}
	}
	s.calls = keep
}

func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}
	idx := (float64(len(sorted)-1) * pct) / 100.0
	lo := int(idx)
	hi := lo + 1
	if hi >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := idx - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac
}
