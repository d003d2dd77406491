package molecule

import (
	"math"
	"sort"
)

// Point is a 2D coordinate in bond-length units.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point       { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point       { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(f float64) Point   { return Point{p.X * f, p.Y * f} }
func (p Point) length() float64         { return math.Hypot(p.X, p.Y) }
func (p Point) angleTo(q Point) float64 { return math.Atan2(q.Y-p.Y, q.X-p.X) }

func polar(angle float64) Point { return Point{math.Cos(angle), math.Sin(angle)} }

// Layout computes deterministic 2D coordinates: ring systems as fused regular
// polygons, substituents and chains as 120° zig-zags, fragments side by side.
func Layout(m *Molecule) []Point {
	l := &layouter{
		m:      m,
		pos:    make([]Point, len(m.Atoms)),
		placed: make([]bool, len(m.Atoms)),
	}
	offsetX := 0.0
	for _, comp := range m.Components() {
		l.layoutComponent(comp)
		l.relax(comp)

		minX, maxX := math.Inf(1), math.Inf(-1)
		minY, maxY := math.Inf(1), math.Inf(-1)
		for _, i := range comp {
			minX, maxX = math.Min(minX, l.pos[i].X), math.Max(maxX, l.pos[i].X)
			minY, maxY = math.Min(minY, l.pos[i].Y), math.Max(maxY, l.pos[i].Y)
		}
		midY := (minY + maxY) / 2
		for _, i := range comp {
			l.pos[i] = Point{l.pos[i].X - minX + offsetX, l.pos[i].Y - midY}
		}
		offsetX += maxX - minX + 1.5
	}
	return l.pos
}

type layouter struct {
	m      *Molecule
	pos    []Point
	placed []bool
}

func (l *layouter) place(i int, p Point) {
	l.pos[i] = p
	l.placed[i] = true
}

func (l *layouter) layoutComponent(comp []int) {
	inComp := map[int]bool{}
	for _, i := range comp {
		inComp[i] = true
	}
	var rings [][]int
	for _, r := range l.m.Rings() {
		if inComp[r[0]] {
			rings = append(rings, r)
		}
	}

	if len(rings) > 0 {
		l.placeRings(rings)
	} else {
		l.place(comp[0], Point{})
	}

	// grow substituents breadth-first from everything already placed
	var queue []int
	for _, i := range comp {
		if l.placed[i] {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range l.placeNeighbors(u) {
			queue = append(queue, v)
		}
		if len(queue) == 0 {
			// ring systems not reachable through placed atoms (bridged
			// leftovers) are seeded next to the last atom
			for _, i := range comp {
				if !l.placed[i] {
					l.place(i, l.pos[u].add(Point{1, 0}))
					queue = append(queue, i)
					break
				}
			}
		}
	}
}

// placeRings lays out ring systems starting from the largest ring.
func (l *layouter) placeRings(rings [][]int) {
	sort.SliceStable(rings, func(i, j int) bool { return len(rings[i]) > len(rings[j]) })
	done := make([]bool, len(rings))

	for {
		// pick the unplaced ring with most placed atoms
		best, bestPlaced := -1, -1
		for ri, r := range rings {
			if done[ri] {
				continue
			}
			n := 0
			for _, a := range r {
				if l.placed[a] {
					n++
				}
			}
			if n > bestPlaced {
				best, bestPlaced = ri, n
			}
		}
		if best < 0 {
			return
		}
		done[best] = true
		r := rings[best]

		switch {
		case bestPlaced == 0:
			if l.anyPlaced() {
				// separate ring system; it will be reached through chain growth
				done[best] = false
				if !l.hasUnplacedConnected(rings, done) {
					return
				}
				l.placeViaChains(rings, done)
				continue
			}
			l.placePolygon(r, Point{}, 0)
		case bestPlaced == 1:
			l.placeSpiro(r)
		case bestPlaced == len(r):
		default:
			l.placeFused(r)
		}
	}
}

func (l *layouter) anyPlaced() bool {
	for _, p := range l.placed {
		if p {
			return true
		}
	}
	return false
}

func (l *layouter) hasUnplacedConnected(rings [][]int, done []bool) bool {
	for ri := range rings {
		if !done[ri] {
			return true
		}
	}
	return false
}

// placeViaChains grows chains from placed atoms until some pending ring gains
// a placed atom, then lets placeRings continue from there.
func (l *layouter) placeViaChains(rings [][]int, done []bool) {
	pendingAtoms := map[int]bool{}
	for ri, r := range rings {
		if done[ri] {
			continue
		}
		for _, a := range r {
			pendingAtoms[a] = true
		}
	}

	var queue []int
	for i, p := range l.placed {
		if p {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range l.m.Neighbors(u) {
			if l.placed[v] {
				continue
			}
			if pendingAtoms[v] {
				// place the first ring atom as a substituent and stop
				l.placeSubstituents(u, []int{v})
				return
			}
		}
		queue = append(queue, l.placeNeighborsExcept(u, pendingAtoms)...)
	}
	// disconnected from placed atoms: mark remaining rings done
	for ri := range rings {
		done[ri] = true
	}
}

// placePolygon places ring r as a regular polygon around center, first atom
// at angle start, counter-clockwise.
func (l *layouter) placePolygon(r []int, center Point, start float64) {
	n := len(r)
	radius := 1 / (2 * math.Sin(math.Pi/float64(n)))
	step := 2 * math.Pi / float64(n)
	for k, a := range r {
		if !l.placed[a] {
			l.place(a, center.add(polar(start+float64(k)*step).scale(radius)))
		}
	}
}

// placeFused places a ring sharing an edge (or more) with placed atoms on the
// side of the shared edge away from the existing atoms.
func (l *layouter) placeFused(r []int) {
	n := len(r)
	// find a placed edge r[k]-r[k+1]
	k := -1
	for i := 0; i < n; i++ {
		if l.placed[r[i]] && l.placed[r[(i+1)%n]] {
			k = i
			break
		}
	}
	if k < 0 {
		l.placeSpiro(r)
		return
	}
	a, b := r[k], r[(k+1)%n]
	pa, pb := l.pos[a], l.pos[b]
	mid := pa.add(pb).scale(0.5)
	edge := pb.sub(pa)
	normal := Point{-edge.Y, edge.X}
	if normal.length() == 0 {
		normal = Point{0, 1}
	}
	normal = normal.scale(1 / normal.length())

	// existing side: centroid of the placed neighbours of a and b
	side := Point{}
	cnt := 0
	for _, x := range []int{a, b} {
		for _, nb := range l.m.Neighbors(x) {
			if nb != a && nb != b && l.placed[nb] {
				side = side.add(l.pos[nb])
				cnt++
			}
		}
	}
	if cnt > 0 {
		side = side.scale(1 / float64(cnt))
		if side.sub(mid).X*normal.X+side.sub(mid).Y*normal.Y > 0 {
			normal = normal.scale(-1)
		}
	}

	apothem := 1 / (2 * math.Tan(math.Pi/float64(n)))
	center := mid.add(normal.scale(apothem))
	radius := 1 / (2 * math.Sin(math.Pi/float64(n)))
	step := 2 * math.Pi / float64(n)

	angA := center.angleTo(pa)
	angB := center.angleTo(pb)
	dir := 1.0
	if d := normalizeAngle(angB - angA); d < 0 {
		dir = -1
	}
	for j := 0; j < n; j++ {
		atom := r[(k+j)%n]
		if !l.placed[atom] {
			l.place(atom, center.add(polar(angA+dir*float64(j)*step).scale(radius)))
		}
	}
}

// placeSpiro places ring r that shares a single placed atom, pointing away
// from that atom's placed neighbours.
func (l *layouter) placeSpiro(r []int) {
	k := -1
	for i, a := range r {
		if l.placed[a] {
			k = i
			break
		}
	}
	if k < 0 {
		l.placePolygon(r, Point{}, 0)
		return
	}
	a := r[k]
	away := l.freeDirection(a)
	n := len(r)
	radius := 1 / (2 * math.Sin(math.Pi/float64(n)))
	center := l.pos[a].add(polar(away).scale(radius))
	start := center.angleTo(l.pos[a])
	step := 2 * math.Pi / float64(n)
	for j := 0; j < n; j++ {
		atom := r[(k+j)%n]
		if !l.placed[atom] {
			l.place(atom, center.add(polar(start+float64(j)*step).scale(radius)))
		}
	}
}

// freeDirection returns the bisector of the widest free angular gap around a.
func (l *layouter) freeDirection(a int) float64 {
	angles := l.occupiedAngles(a)
	if len(angles) == 0 {
		return 0
	}
	start, gap := widestGap(angles)
	return start + gap/2
}

func (l *layouter) occupiedAngles(a int) []float64 {
	var angles []float64
	for _, nb := range l.m.Neighbors(a) {
		if l.placed[nb] {
			angles = append(angles, l.pos[a].angleTo(l.pos[nb]))
		}
	}
	return angles
}

// widestGap returns the start angle and size of the largest gap between
// sorted occupied directions.
func widestGap(angles []float64) (float64, float64) {
	sorted := append([]float64(nil), angles...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0], 2 * math.Pi
	}
	bestStart, bestGap := 0.0, -1.0
	for i := range sorted {
		next := sorted[(i+1)%len(sorted)]
		if i == len(sorted)-1 {
			next += 2 * math.Pi
		}
		if g := next - sorted[i]; g > bestGap {
			bestStart, bestGap = sorted[i], g
		}
	}
	return bestStart, bestGap
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// placeNeighbors places every unplaced neighbour of u and returns them.
func (l *layouter) placeNeighbors(u int) []int {
	return l.placeNeighborsExcept(u, nil)
}

func (l *layouter) placeNeighborsExcept(u int, skip map[int]bool) []int {
	var todo []int
	for _, v := range l.m.Neighbors(u) {
		if !l.placed[v] && !skip[v] {
			todo = append(todo, v)
		}
	}
	if len(todo) == 0 {
		return nil
	}
	l.placeSubstituents(u, todo)
	return todo
}

// placeSubstituents spreads todo around u inside the widest free gap.  A
// single continuation of a chain zig-zags away from the grandparent, and
// atoms on triple bonds or cumulated double bonds continue straight.
func (l *layouter) placeSubstituents(u int, todo []int) {
	occupied := l.occupiedAngles(u)
	if len(occupied) == 0 {
		step := 2 * math.Pi / float64(len(todo))
		base := -math.Pi / 6
		for k, v := range todo {
			l.place(v, l.pos[u].add(polar(base+float64(k)*step)))
		}
		return
	}

	if len(occupied) == 1 && len(todo) == 1 {
		back := occupied[0]
		if l.isLinear(u) {
			l.place(todo[0], l.pos[u].add(polar(back+math.Pi)))
			return
		}
		c1 := l.pos[u].add(polar(back + 2*math.Pi/3))
		c2 := l.pos[u].add(polar(back - 2*math.Pi/3))
		choice := c1
		if g := l.grandparent(u); g >= 0 {
			if c2.sub(l.pos[g]).length() > c1.sub(l.pos[g]).length() {
				choice = c2
			}
		}
		l.place(todo[0], choice)
		return
	}

	start, gap := widestGap(occupied)
	step := gap / float64(len(todo)+1)
	for k, v := range todo {
		l.place(v, l.pos[u].add(polar(start+float64(k+1)*step)))
	}
}

func (l *layouter) isLinear(u int) bool {
	doubles := 0
	for _, b := range l.m.AtomBonds(u) {
		switch b.Order {
		case BondTriple, BondQuadruple:
			return true
		case BondDouble:
			doubles++
		}
	}
	return doubles >= 2
}

// grandparent returns a placed neighbour of u's placed neighbour, other than u.
func (l *layouter) grandparent(u int) int {
	for _, p := range l.m.Neighbors(u) {
		if !l.placed[p] {
			continue
		}
		for _, g := range l.m.Neighbors(p) {
			if g != u && l.placed[g] {
				return g
			}
		}
	}
	return -1
}

// relax pushes apart non-bonded atoms that ended up too close, moving
// non-ring atoms only.
func (l *layouter) relax(comp []int) {
	const minDist = 0.6
	for iter := 0; iter < 60; iter++ {
		moved := false
		for x := 0; x < len(comp); x++ {
			for y := x + 1; y < len(comp); y++ {
				i, j := comp[x], comp[y]
				if l.m.BondBetween(i, j) != nil {
					continue
				}
				d := l.pos[j].sub(l.pos[i])
				dist := d.length()
				if dist >= minDist {
					continue
				}
				if dist < 1e-6 {
					d = polar(float64(i+j) * 0.7)
					dist = 1
				}
				push := d.scale((minDist - dist) / dist / 2)
				iMovable := !l.m.Atoms[i].InRing
				jMovable := !l.m.Atoms[j].InRing
				switch {
				case iMovable && jMovable:
					l.pos[i] = l.pos[i].sub(push)
					l.pos[j] = l.pos[j].add(push)
				case jMovable:
					l.pos[j] = l.pos[j].add(push.scale(2))
				case iMovable:
					l.pos[i] = l.pos[i].sub(push.scale(2))
				default:
					continue
				}
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

//Personal.AI order the ending
