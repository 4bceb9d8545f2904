package systems

import "testing"

func TestQuadTreeInsertAndQuery(t *testing.T) {
	qt := NewQuadTree(Rect{X: 500, Y: 500, W: 500, H: 500}, 4)

	inside := []*fakeOrganism{
		{id: 1, x: 100, y: 100, alive: true},
		{id: 2, x: 250, y: 240, alive: true},
		{id: 3, x: 180, y: 300, alive: true},
	}
	outside := &fakeOrganism{id: 4, x: 900, y: 900, alive: true}

	for _, o := range inside {
		if !qt.Insert(o) {
			t.Fatalf("insert of organism %d failed", o.id)
		}
	}
	qt.Insert(outside)

	found := qt.Query(Rect{X: 200, Y: 200, W: 150, H: 150}, nil)
	if len(found) != 3 {
		t.Errorf("query returned %d organisms, want 3", len(found))
	}
}

func TestQuadTreeRejectsOutOfBounds(t *testing.T) {
	qt := NewQuadTree(Rect{X: 500, Y: 500, W: 500, H: 500}, 4)
	if qt.Insert(&fakeOrganism{id: 1, x: 2000, y: 2000, alive: true}) {
		t.Error("insert outside the boundary must fail")
	}
}

func TestQuadTreeSubdivides(t *testing.T) {
	qt := NewQuadTree(Rect{X: 500, Y: 500, W: 500, H: 500}, 2)

	// Far more points than node capacity forces subdivision; all must
	// remain reachable.
	n := 40
	for i := 0; i < n; i++ {
		o := &fakeOrganism{id: uint32(i), x: float64(i*23 + 7), y: float64(i*17 + 11), alive: true}
		if !qt.Insert(o) {
			t.Fatalf("insert %d failed", i)
		}
	}

	found := qt.Query(Rect{X: 500, Y: 500, W: 500, H: 500}, nil)
	if len(found) != n {
		t.Errorf("query returned %d organisms, want %d", len(found), n)
	}
}

func TestQuadTreeQueryCircle(t *testing.T) {
	qt := NewQuadTree(Rect{X: 500, Y: 500, W: 500, H: 500}, 4)

	center := &fakeOrganism{id: 1, x: 500, y: 500, alive: true}
	near := &fakeOrganism{id: 2, x: 560, y: 500, alive: true}
	// Inside the bounding rect of the circle but outside the circle.
	corner := &fakeOrganism{id: 3, x: 570, y: 570, alive: true}
	qt.Insert(center)
	qt.Insert(near)
	qt.Insert(corner)

	found := qt.QueryCircle(500, 500, 100, nil)
	if len(found) != 2 {
		t.Fatalf("QueryCircle returned %d organisms, want 2", len(found))
	}
	for _, o := range found {
		if o.ID() == 3 {
			t.Error("corner organism outside the circle was returned")
		}
	}
}

func TestQuadTreeRemove(t *testing.T) {
	qt := NewQuadTree(Rect{X: 500, Y: 500, W: 500, H: 500}, 2)

	organisms := make([]*fakeOrganism, 10)
	for i := range organisms {
		organisms[i] = &fakeOrganism{id: uint32(i), x: float64(i * 90), y: float64(i * 90), alive: true}
		qt.Insert(organisms[i])
	}

	if !qt.Remove(organisms[4]) {
		t.Fatal("remove of an inserted organism failed")
	}
	if qt.Remove(organisms[4]) {
		t.Error("second remove of the same organism must fail")
	}

	found := qt.Query(Rect{X: 500, Y: 500, W: 500, H: 500}, nil)
	if len(found) != 9 {
		t.Errorf("query returned %d organisms after removal, want 9", len(found))
	}
}
