package systems

// Rect is an axis-aligned query region: center (X, Y) with half-extents
// (W, H), matching the quadtree's boundary convention.
type Rect struct {
	X, Y float64
	W, H float64
}

// Contains reports whether a point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return r.X-r.W <= x && x < r.X+r.W &&
		r.Y-r.H <= y && y < r.Y+r.H
}

// Intersects reports whether another rectangle overlaps this one.
func (r Rect) Intersects(o Rect) bool {
	return !(o.X-o.W > r.X+r.W ||
		o.X+o.W < r.X-r.W ||
		o.Y-o.H > r.Y+r.H ||
		o.Y+o.H < r.Y-r.H)
}

// QuadTree is a point-region spatial index over organisms. It backs
// nearest-neighbor style queries (reproduction placement, crush checks,
// animal vision, the click-picker); the competition grids are a separate
// structure with different aggregation semantics.
type QuadTree struct {
	boundary Rect
	capacity int
	points   []Organism
	divided  bool

	northeast *QuadTree
	northwest *QuadTree
	southeast *QuadTree
	southwest *QuadTree
}

// NewQuadTree creates an empty quadtree covering the given boundary.
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{boundary: boundary, capacity: capacity}
}

// Insert adds an organism at its current position. Returns false if the
// position is outside this tree's boundary.
func (q *QuadTree) Insert(o Organism) bool {
	x, y := o.Position()
	if !q.boundary.Contains(x, y) {
		return false
	}

	if len(q.points) < q.capacity {
		q.points = append(q.points, o)
		return true
	}

	if !q.divided {
		q.subdivide()
	}

	return q.northeast.Insert(o) || q.northwest.Insert(o) ||
		q.southeast.Insert(o) || q.southwest.Insert(o)
}

// Remove deletes an organism from the tree, locating it by its current
// position. Returns false if it was not found.
func (q *QuadTree) Remove(o Organism) bool {
	x, y := o.Position()
	return q.remove(o, x, y)
}

func (q *QuadTree) remove(o Organism, x, y float64) bool {
	if !q.boundary.Contains(x, y) {
		return false
	}

	for i, p := range q.points {
		if p == o {
			q.points[i] = q.points[len(q.points)-1]
			q.points = q.points[:len(q.points)-1]
			return true
		}
	}

	if !q.divided {
		return false
	}
	return q.northeast.remove(o, x, y) || q.northwest.remove(o, x, y) ||
		q.southeast.remove(o, x, y) || q.southwest.remove(o, x, y)
}

// Query appends every organism inside the range rectangle to found and
// returns the result. Pass a nil or reused slice to control allocation.
func (q *QuadTree) Query(rng Rect, found []Organism) []Organism {
	if !q.boundary.Intersects(rng) {
		return found
	}

	for _, p := range q.points {
		x, y := p.Position()
		if rng.Contains(x, y) {
			found = append(found, p)
		}
	}

	if q.divided {
		found = q.northwest.Query(rng, found)
		found = q.northeast.Query(rng, found)
		found = q.southwest.Query(rng, found)
		found = q.southeast.Query(rng, found)
	}

	return found
}

// QueryCircle appends every organism within radius of (x, y).
// Broad-phase via the bounding rect, then an exact distance test.
func (q *QuadTree) QueryCircle(x, y, radius float64, found []Organism) []Organism {
	candidates := q.Query(Rect{X: x, Y: y, W: radius, H: radius}, nil)
	rr := radius * radius
	for _, p := range candidates {
		px, py := p.Position()
		dx := px - x
		dy := py - y
		if dx*dx+dy*dy <= rr {
			found = append(found, p)
		}
	}
	return found
}

func (q *QuadTree) subdivide() {
	x, y := q.boundary.X, q.boundary.Y
	w, h := q.boundary.W/2, q.boundary.H/2

	q.northeast = NewQuadTree(Rect{X: x + w, Y: y - h, W: w, H: h}, q.capacity)
	q.northwest = NewQuadTree(Rect{X: x - w, Y: y - h, W: w, H: h}, q.capacity)
	q.southeast = NewQuadTree(Rect{X: x + w, Y: y + h, W: w, H: h}, q.capacity)
	q.southwest = NewQuadTree(Rect{X: x - w, Y: y + h, W: w, H: h}, q.capacity)
	q.divided = true
}
