// Package molecule interprets structure strings (SMILES) into atom/bond
// graphs and computes what the candidate evaluator needs from them: average
// molecular weight, a Crippen-style logP, Lipinski hydrogen-bond donor and
// acceptor counts, and a fixed-size 2D depiction.
package molecule

import (
	"fmt"
	"sort"
	"strings"
)

// BondOrder is the order of a bond as written.
type BondOrder int

const (
	BondSingle    BondOrder = 1
	BondDouble    BondOrder = 2
	BondTriple    BondOrder = 3
	BondQuadruple BondOrder = 4
	BondAromatic  BondOrder = 5
)

// Atom is one node of the molecular graph.
type Atom struct {
	Index    int
	Element  *Element
	Aromatic bool
	Charge   int
	Isotope  int
	Class    int

	// Bracket is true for atoms written as [..]; their hydrogen count is
	// explicit and never inferred.
	Bracket bool

	// ExplicitH is the hydrogen count written inside brackets plus folded
	// [H] neighbours.
	ExplicitH int

	// ImplicitH is inferred from default valences for organic-subset atoms.
	ImplicitH int

	InRing bool
}

// Number returns the atomic number.
func (a *Atom) Number() int { return a.Element.Number }

// Symbol returns the element symbol.
func (a *Atom) Symbol() string { return a.Element.Symbol }

// TotalH returns the number of hydrogens attached to the atom.
func (a *Atom) TotalH() int { return a.ExplicitH + a.ImplicitH }

// Bond connects two atoms.
type Bond struct {
	Index int
	Begin int
	End   int
	Order BondOrder

	// Kekule is the localized order (1 or 2) of an aromatic bond after
	// kekulization; equal to Order for every other bond.
	Kekule BondOrder

	InRing bool
}

// Other returns the atom on the opposite end of the bond from atom i.
func (b *Bond) Other(i int) int {
	if b.Begin == i {
		return b.End
	}
	return b.Begin
}

// IsAromatic reports whether the bond was written or perceived as aromatic.
func (b *Bond) IsAromatic() bool { return b.Order == BondAromatic }

// valenceContribution is the localized order used for valence sums.
func (b *Bond) valenceContribution() int {
	if b.Order == BondAromatic {
		if b.Kekule == 0 {
			return 1
		}
		return int(b.Kekule)
	}
	return int(b.Order)
}

// Molecule is a parsed structure.  It is immutable once ParseSMILES returns.
type Molecule struct {
	SMILES string
	Atoms  []*Atom
	Bonds  []*Bond

	adj   [][]int // bond indices per atom
	rings [][]int // smallest set of smallest rings, atom order along ring
}

func newMolecule(smiles string) *Molecule {
	return &Molecule{SMILES: smiles}
}

func (m *Molecule) addAtom(a *Atom) int {
	a.Index = len(m.Atoms)
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	return a.Index
}

func (m *Molecule) addBond(begin, end int, order BondOrder) (*Bond, error) {
	if begin == end {
		return nil, fmt.Errorf("atom %d bonded to itself", begin+1)
	}
	if m.BondBetween(begin, end) != nil {
		return nil, fmt.Errorf("duplicate bond between atoms %d and %d", begin+1, end+1)
	}
	b := &Bond{Index: len(m.Bonds), Begin: begin, End: end, Order: order, Kekule: order}
	m.Bonds = append(m.Bonds, b)
	m.adj[begin] = append(m.adj[begin], b.Index)
	m.adj[end] = append(m.adj[end], b.Index)
	return b, nil
}

// AtomCount returns the number of heavy (non-implicit) atoms.
func (m *Molecule) AtomCount() int { return len(m.Atoms) }

// AtomBonds returns the bonds incident to atom i.
func (m *Molecule) AtomBonds(i int) []*Bond {
	out := make([]*Bond, 0, len(m.adj[i]))
	for _, bi := range m.adj[i] {
		out = append(out, m.Bonds[bi])
	}
	return out
}

// Neighbors returns the indices of atoms bonded to atom i.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.adj[i]))
	for _, bi := range m.adj[i] {
		out = append(out, m.Bonds[bi].Other(i))
	}
	return out
}

// Degree returns the number of explicit neighbours of atom i.
func (m *Molecule) Degree(i int) int { return len(m.adj[i]) }

// BondBetween returns the bond joining i and j, or nil.
func (m *Molecule) BondBetween(i, j int) *Bond {
	if i < 0 || i >= len(m.adj) {
		return nil
	}
	for _, bi := range m.adj[i] {
		if m.Bonds[bi].Other(i) == j {
			return m.Bonds[bi]
		}
	}
	return nil
}

// Valence returns the total valence of atom i: localized bond orders plus
// attached hydrogens.
func (m *Molecule) Valence(i int) int {
	v := m.Atoms[i].TotalH()
	for _, bi := range m.adj[i] {
		v += m.Bonds[bi].valenceContribution()
	}
	return v
}

// Connectivity is the SMARTS X primitive: neighbours plus hydrogens.
func (m *Molecule) Connectivity(i int) int {
	return m.Degree(i) + m.Atoms[i].TotalH()
}

// Rings returns the smallest set of smallest rings as ordered atom lists.
func (m *Molecule) Rings() [][]int {
	return m.rings
}

// Components returns the atom index sets of the disconnected fragments.
func (m *Molecule) Components() [][]int {
	seen := make([]bool, len(m.Atoms))
	var comps [][]int
	for start := range m.Atoms {
		if seen[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, n := range m.Neighbors(cur) {
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// HydrogenCount returns the total number of hydrogens in the molecule.
func (m *Molecule) HydrogenCount() int {
	n := 0
	for _, a := range m.Atoms {
		n += a.TotalH()
		if a.Number() == 1 {
			n++
		}
	}
	return n
}

// Formula returns the molecular formula in Hill order.
func (m *Molecule) Formula() string {
	counts := map[string]int{}
	charge := 0
	for _, a := range m.Atoms {
		if a.Number() > 0 {
			counts[a.Symbol()]++
		}
		counts["H"] += a.TotalH()
		charge += a.Charge
	}
	if counts["H"] == 0 {
		delete(counts, "H")
	}

	var keys []string
	for k := range counts {
		if k != "C" && k != "H" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	order := keys
	if counts["C"] > 0 {
		order = append([]string{"C", "H"}, keys...)
	} else if counts["H"] > 0 {
		order = append([]string{"H"}, keys...)
		sort.Strings(order)
	}

	var sb strings.Builder
	for _, k := range order {
		n, ok := counts[k]
		if !ok {
			continue
		}
		sb.WriteString(k)
		if n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
	}
	switch {
	case charge == 1:
		sb.WriteString("+")
	case charge == -1:
		sb.WriteString("-")
	case charge > 1:
		fmt.Fprintf(&sb, "+%d", charge)
	case charge < -1:
		fmt.Fprintf(&sb, "%d", charge)
	}
	return sb.String()
}

//Personal.AI order the ending
