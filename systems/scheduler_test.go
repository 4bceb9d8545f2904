package systems

import "testing"

func TestScheduleBucketKeys(t *testing.T) {
	tests := []struct {
		name     string
		now      float64
		delay    float64
		interval float64
		wantKey  int64
	}{
		{"aligned start", 0, 3600, 3600, 3600},
		{"mid-interval start quantizes down", 100, 3600, 3600, 3600},
		{"just before boundary", 3599, 3600, 3600, 3600},
		{"on boundary", 3600, 3600, 3600, 7200},
		{"zero delay", 7200, 0, 3600, 7200},
		{"minute interval", 0, 60, 60, 60},
		{"long delay spans buckets", 0, 10000, 3600, 7200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			o := &fakeOrganism{id: 1, alive: true, interval: tt.interval}
			s.Schedule(o, tt.now, tt.delay)

			key, ok := s.MinKeyBelow(1e12)
			if !ok {
				t.Fatal("no bucket created")
			}
			if key != tt.wantKey {
				t.Errorf("bucket key = %d, want %d", key, tt.wantKey)
			}
		})
	}
}

func TestMinKeyBelowExcludesEnd(t *testing.T) {
	s := NewScheduler()
	s.Schedule(&fakeOrganism{id: 1, alive: true, interval: 3600}, 0, 3600)

	if _, ok := s.MinKeyBelow(3600); ok {
		t.Error("key equal to end must not be returned")
	}
	if key, ok := s.MinKeyBelow(3601); !ok || key != 3600 {
		t.Errorf("MinKeyBelow(3601) = %d, %v; want 3600, true", key, ok)
	}
}

func TestMinKeyBelowReturnsSmallest(t *testing.T) {
	s := NewScheduler()
	a := &fakeOrganism{id: 1, alive: true, interval: 3600}
	b := &fakeOrganism{id: 2, alive: true, interval: 60}
	s.Schedule(a, 0, 3600)
	s.Schedule(b, 0, 60)

	key, ok := s.MinKeyBelow(1e12)
	if !ok || key != 60 {
		t.Errorf("MinKeyBelow = %d, %v; want 60, true", key, ok)
	}
}

func TestDrainRemovesBucket(t *testing.T) {
	s := NewScheduler()
	a := &fakeOrganism{id: 1, alive: true, interval: 60}
	b := &fakeOrganism{id: 2, alive: true, interval: 60}
	s.Schedule(a, 0, 60)
	s.Schedule(b, 0, 60)

	got := s.Drain(60)
	if len(got) != 2 {
		t.Fatalf("Drain returned %d organisms, want 2", len(got))
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after drain, want 0", s.Pending())
	}
	if again := s.Drain(60); again != nil {
		t.Error("second drain of the same key must return nil")
	}
}

func TestOrganismsShareBuckets(t *testing.T) {
	s := NewScheduler()
	// Two organisms scheduled from different points inside the same
	// interval land in the same bucket.
	s.Schedule(&fakeOrganism{id: 1, alive: true, interval: 3600}, 0, 3600)
	s.Schedule(&fakeOrganism{id: 2, alive: true, interval: 3600}, 1800, 3600)

	if got := len(s.Drain(3600)); got != 2 {
		t.Errorf("bucket holds %d organisms, want 2", got)
	}
}
