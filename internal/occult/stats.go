package occult

import "sync/atomic"

// Stats counts interpolated-path activity. Counters are atomic so the
// lock-free parallel phase can update them concurrently.
type Stats struct {
	interpolated atomic.Int64
	fallbacks    atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Interpolated int64 // samples served from the table
	Fallbacks    int64 // out-of-range samples routed to the exact path
}

func (s *Stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Interpolated: s.interpolated.Load(),
		Fallbacks:    s.fallbacks.Load(),
	}
}
