package molecule

import "sort"

// perceiveRings flags ring atoms and bonds (every bond that is not a bridge)
// and computes the smallest set of smallest rings.
func perceiveRings(m *Molecule) error {
	n := len(m.Atoms)
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	timer := 0
	isBridge := make([]bool, len(m.Bonds))

	var dfs func(u, parentBond int)
	dfs = func(u, parentBond int) {
		disc[u] = timer
		low[u] = timer
		timer++
		for _, bi := range m.adj[u] {
			if bi == parentBond {
				continue
			}
			v := m.Bonds[bi].Other(u)
			if disc[v] < 0 {
				dfs(v, bi)
				if low[v] < low[u] {
					low[u] = low[v]
				}
				if low[v] > disc[u] {
					isBridge[bi] = true
				}
			} else if disc[v] < low[u] {
				low[u] = disc[v]
			}
		}
	}
	for i := 0; i < n; i++ {
		if disc[i] < 0 {
			dfs(i, -1)
		}
	}

	ringBonds := 0
	for bi, b := range m.Bonds {
		if isBridge[bi] {
			continue
		}
		b.InRing = true
		ringBonds++
		m.Atoms[b.Begin].InRing = true
		m.Atoms[b.End].InRing = true
	}
	if ringBonds == 0 {
		return nil
	}

	m.rings = smallestRings(m, len(m.Bonds)-n+len(m.Components()))
	return nil
}

type ringCandidate struct {
	atoms []int
	bonds []bool
}

// smallestRings builds one shortest cycle through every ring bond, then keeps
// the smallest linearly independent ones (over GF(2) on bond sets) until
// want rings are collected.
func smallestRings(m *Molecule, want int) [][]int {
	var cands []ringCandidate
	seen := map[string]bool{}
	for _, b := range m.Bonds {
		if !b.InRing {
			continue
		}
		path := shortestRingPath(m, b.End, b.Begin, b.Index)
		if path == nil {
			continue
		}
		key := cycleKey(path)
		if seen[key] {
			continue
		}
		seen[key] = true

		bonds := make([]bool, len(m.Bonds))
		for i := range path {
			nb := m.BondBetween(path[i], path[(i+1)%len(path)])
			bonds[nb.Index] = true
		}
		cands = append(cands, ringCandidate{atoms: path, bonds: bonds})
	}
	sort.SliceStable(cands, func(i, j int) bool { return len(cands[i].atoms) < len(cands[j].atoms) })

	var basis [][]bool
	var rings [][]int
	for _, c := range cands {
		if len(rings) >= want {
			break
		}
		if independent(basis, c.bonds) {
			basis = append(basis, append([]bool(nil), c.bonds...))
			rings = append(rings, c.atoms)
		}
	}
	return rings
}

// shortestRingPath returns the atoms of the shortest path from start to goal
// that avoids skipBond and uses ring bonds only.
func shortestRingPath(m *Molecule, start, goal, skipBond int) []int {
	prev := make([]int, len(m.Atoms))
	for i := range prev {
		prev[i] = -2
	}
	prev[start] = -1
	queue := []int{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == goal {
			break
		}
		for _, bi := range m.adj[u] {
			b := m.Bonds[bi]
			if bi == skipBond || !b.InRing {
				continue
			}
			v := b.Other(u)
			if prev[v] != -2 {
				continue
			}
			prev[v] = u
			queue = append(queue, v)
		}
	}
	if prev[goal] == -2 {
		return nil
	}
	var path []int
	for cur := goal; cur != -1; cur = prev[cur] {
		path = append(path, cur)
	}
	return path
}

func cycleKey(atoms []int) string {
	sorted := append([]int(nil), atoms...)
	sort.Ints(sorted)
	key := make([]byte, 0, len(sorted)*3)
	for _, a := range sorted {
		key = append(key, byte(a>>8), byte(a), ',')
	}
	return string(key)
}

// independent reports whether v is not in the GF(2) span of basis.
func independent(basis [][]bool, v []bool) bool {
	if len(basis) == 0 {
		return true
	}
	rows := make([][]bool, 0, len(basis)+1)
	for _, r := range basis {
		rows = append(rows, append([]bool(nil), r...))
	}
	rows = append(rows, append([]bool(nil), v...))

	rank := 0
	cols := len(v)
	for c := 0; c < cols && rank < len(rows); c++ {
		pivot := -1
		for r := rank; r < len(rows); r++ {
			if rows[r][c] {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			continue
		}
		rows[rank], rows[pivot] = rows[pivot], rows[rank]
		for r := 0; r < len(rows); r++ {
			if r != rank && rows[r][c] {
				for k := c; k < cols; k++ {
					rows[r][k] = rows[r][k] != rows[rank][k]
				}
			}
		}
		rank++
	}
	return rank == len(rows)
}

// RingCount returns the number of rings in the smallest set of smallest rings.
func (m *Molecule) RingCount() int { return len(m.rings) }

// AromaticRingCount returns the number of rings whose atoms are all aromatic.
func (m *Molecule) AromaticRingCount() int {
	n := 0
	for _, r := range m.rings {
		all := true
		for _, a := range r {
			if !m.Atoms[a].Aromatic {
				all = false
				break
			}
		}
		if all {
			n++
		}
	}
	return n
}

//Personal.AI order the ending
