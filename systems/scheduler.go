package systems

import "math"

// Scheduler defers organism ticks into time buckets keyed by quantized
// simulation seconds. Bucketing on the organism kind's fixed interval
// (rather than per-organism float times) is a deliberate precision/
// performance trade: organisms sharing a key are drained in insertion
// order, which carries no ordering guarantee.
//
// The scheduler is plain run-scoped state owned by the orchestrator and
// passed by reference wherever scheduling is needed.
type Scheduler struct {
	buckets map[int64][]Organism
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{buckets: make(map[int64][]Organism)}
}

// Schedule inserts o into the bucket at
// floor((now+delay)/interval)*interval, creating the bucket if absent.
// The interval is the organism's own fixed tick length.
func (s *Scheduler) Schedule(o Organism, now, delay float64) {
	interval := o.TickInterval()
	key := int64(math.Floor((now+delay)/interval) * interval)
	s.buckets[key] = append(s.buckets[key], o)
}

// MinKeyBelow returns the smallest bucket key strictly before end, and
// whether one exists.
func (s *Scheduler) MinKeyBelow(end float64) (int64, bool) {
	found := false
	var min int64
	for key, bucket := range s.buckets {
		if len(bucket) == 0 {
			continue
		}
		if float64(key) >= end {
			continue
		}
		if !found || key < min {
			min = key
			found = true
		}
	}
	return min, found
}

// Drain removes and returns the bucket at key, nil if absent.
func (s *Scheduler) Drain(key int64) []Organism {
	bucket, ok := s.buckets[key]
	if !ok {
		return nil
	}
	delete(s.buckets, key)
	return bucket
}

// Pending returns the total number of scheduled (possibly dead) entries.
func (s *Scheduler) Pending() int {
	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}
	return n
}
