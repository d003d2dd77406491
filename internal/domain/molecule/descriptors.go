package molecule

// Descriptors are the four properties the rule-of-five screen consumes.
type Descriptors struct {
	MolecularWeight float64
	LogP            float64
	HDonors         int
	HAcceptors      int
}

// Calculator computes descriptors for a parsed molecule.  The candidate
// evaluator depends on this interface so tests can substitute fixed values.
type Calculator interface {
	Compute(m *Molecule) (Descriptors, error)
}

// DefaultCalculator implements Calculator with average-mass molecular weight,
// Wildman–Crippen logP and Lipinski donor/acceptor definitions.
type DefaultCalculator struct{}

// NewCalculator returns the default descriptor calculator.
func NewCalculator() DefaultCalculator { return DefaultCalculator{} }

// Compute implements Calculator.
func (DefaultCalculator) Compute(m *Molecule) (Descriptors, error) {
	return Descriptors{
		MolecularWeight: MolWt(m),
		LogP:            MolLogP(m),
		HDonors:         NumHDonors(m),
		HAcceptors:      NumHAcceptors(m),
	}, nil
}

// MolWt returns the average molecular weight including attached hydrogens.
// Atoms with an isotope label use the isotope's mass number.
func MolWt(m *Molecule) float64 {
	w := 0.0
	for _, a := range m.Atoms {
		if a.Isotope > 0 {
			w += float64(a.Isotope)
		} else {
			w += a.Element.Mass
		}
		w += float64(a.TotalH()) * hydrogenMass
	}
	return w
}

// NumHDonors counts N and O/S atoms carrying hydrogens in donor
// environments: neutral trivalent or cationic tetravalent N with H, neutral
// OH and SH, and aromatic nH.
func NumHDonors(m *Molecule) int {
	n := 0
	for i, a := range m.Atoms {
		h := a.TotalH()
		if h == 0 {
			continue
		}
		v := m.Valence(i)
		switch a.Number() {
		case 7:
			if a.Aromatic {
				if h == 1 && a.Charge == 0 {
					n++
				}
				continue
			}
			if (a.Charge == 0 && v == 3) || (a.Charge == 1 && v == 4) {
				n++
			}
		case 8, 16:
			if !a.Aromatic && h == 1 && a.Charge == 0 {
				n++
			}
		}
	}
	return n
}

// NumHAcceptors counts acceptor atoms: ether/carbonyl O and S, hydroxyl O and
// SH whose neighbour is not a carbonyl-like centre, anionic O/S, trivalent N
// that is not an amide-type nitrogen, unprotonated aromatic n, aromatic o/s,
// and F.
func NumHAcceptors(m *Molecule) int {
	n := 0
	for i, a := range m.Atoms {
		if isAcceptor(m, i, a) {
			n++
		}
	}
	return n
}

func isAcceptor(m *Molecule, i int, a *Atom) bool {
	h := a.TotalH()
	v := m.Valence(i)
	switch a.Number() {
	case 9:
		return true
	case 8, 16:
		if a.Aromatic {
			return a.Charge == 0
		}
		if a.Charge < 0 {
			return true
		}
		if v != 2 {
			return false
		}
		if h == 0 {
			return true
		}
		if h == 1 {
			for _, b := range m.AtomBonds(i) {
				if b.Order != BondSingle {
					continue
				}
				if !hasDoubleToHetero(m, b.Other(i), false) {
					return true
				}
			}
		}
		return false
	case 7:
		if a.Aromatic {
			return h == 0 && a.Charge == 0
		}
		if v != 3 {
			return false
		}
		for _, b := range m.AtomBonds(i) {
			if b.Order != BondSingle {
				continue
			}
			if hasDoubleToHetero(m, b.Other(i), true) {
				return false
			}
		}
		return true
	}
	return false
}

// hasDoubleToHetero reports whether atom j carries a double bond to an
// aliphatic O, N, P or S.  With acyclicOnly only non-ring double bonds count.
func hasDoubleToHetero(m *Molecule, j int, acyclicOnly bool) bool {
	for _, b := range m.AtomBonds(j) {
		if b.Order != BondDouble {
			continue
		}
		if acyclicOnly && b.InRing {
			continue
		}
		o := m.Atoms[b.Other(j)]
		if o.Aromatic {
			continue
		}
		switch o.Number() {
		case 7, 8, 15, 16:
			return true
		}
	}
	return false
}

//Personal.AI order the ending
