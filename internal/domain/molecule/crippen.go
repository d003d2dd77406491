package molecule

// Wildman–Crippen atom-type logP contributions.  Types are assigned in table
// order; the first matching environment wins.
const (
	cC1  = 0.1441
	cC2  = 0.0
	cC3  = -0.2035
	cC4  = -0.2051
	cC5  = -0.2783
	cC6  = 0.1551
	cC7  = 0.0017
	cC8  = 0.08452
	cC9  = -0.1444
	cC10 = -0.0516
	cC11 = 0.1193
	cC12 = -0.0967
	cC13 = -0.5443
	cC14 = 0.0
	cC15 = 0.245
	cC16 = 0.198
	cC17 = 0.0
	cC18 = 0.1581
	cC19 = 0.2955
	cC20 = 0.2713
	cC21 = 0.136
	cC22 = 0.4619
	cC23 = 0.5437
	cC24 = 0.1893
	cC25 = -0.8186
	cC26 = 0.264
	cC27 = 0.2148
	cCS  = 0.08129

	cH1 = 0.123
	cH2 = -0.2677
	cH3 = 0.2142
	cH4 = 0.298
	cHS = 0.1125

	cN1  = -1.019
	cN2  = -0.7096
	cN3  = -1.027
	cN4  = -0.5188
	cN5  = 0.08387
	cN6  = 0.1836
	cN7  = -0.3187
	cN8  = -0.4458
	cN9  = 0.01508
	cN10 = -1.95
	cN11 = -0.3239
	cN12 = -1.119
	cN13 = -0.3396
	cNS  = -0.4806

	cO1  = 0.1552
	cO2  = -0.2893
	cO3  = -0.0684
	cO4  = -0.4195
	cO5  = 0.0335
	cO6  = -0.3339
	cO7  = -1.189
	cO8  = 0.1788
	cO9  = -0.1526
	cO10 = 0.1129
	cO11 = 0.4833
	cO12 = -1.326
	cOS  = -0.1188

	cF       = 0.4202
	cCl      = 0.6895
	cBr      = 0.8456
	cI       = 0.8857
	cHalide  = -2.996
	cP       = 0.8612
	cS1      = 0.6482
	cS2      = -0.0024
	cS3      = 0.6237
	cMetal   = -0.3808
	cOtherEl = -0.0025
)

// MolLogP returns the Crippen octanol/water partition estimate: the sum of
// heavy-atom type contributions plus one contribution per attached hydrogen.
func MolLogP(m *Molecule) float64 {
	total := 0.0
	for i, a := range m.Atoms {
		total += heavyContribution(m, i, a)
		if h := a.TotalH(); h > 0 {
			total += float64(h) * hydrogenContribution(m, i, a)
		}
	}
	return total
}

// env summarizes the neighbourhood of one atom for type matching.
type env struct {
	m  *Molecule
	i  int
	a  *Atom
	h  int
	x  int
	nb []*Bond
}

func newEnv(m *Molecule, i int) env {
	a := m.Atoms[i]
	return env{m: m, i: i, a: a, h: a.TotalH(), x: m.Connectivity(i), nb: m.AtomBonds(i)}
}

func (e env) other(b *Bond) *Atom { return e.m.Atoms[b.Other(e.i)] }

// singleLike is the SMARTS default bond: single or aromatic.
func singleLike(b *Bond) bool { return b.Order == BondSingle || b.Order == BondAromatic }

func aliphaticC(a *Atom) bool { return a.Number() == 6 && !a.Aromatic }

func aliphaticHeavy(a *Atom) bool { return !a.Aromatic && a.Number() != 1 }

// isHetero matches [N,O,P,S,F,Cl,Br,I]: aliphatic N, O, P, S and any halogen.
func isHetero(a *Atom) bool {
	switch a.Number() {
	case 9, 17, 35, 53:
		return true
	case 7, 8, 15, 16:
		return !a.Aromatic
	}
	return false
}

// isCommonOrganic matches C, N, O, P, S, F, Cl, Br, I in any aromaticity.
func isCommonOrganic(n int) bool {
	switch n {
	case 6, 7, 8, 15, 16, 9, 17, 35, 53:
		return true
	}
	return false
}

// count returns how many bonds satisfy pred.
func (e env) count(pred func(b *Bond, o *Atom) bool) int {
	n := 0
	for _, b := range e.nb {
		if pred(b, e.other(b)) {
			n++
		}
	}
	return n
}

func (e env) has(pred func(b *Bond, o *Atom) bool) bool { return e.count(pred) > 0 }

func (e env) all(pred func(b *Bond, o *Atom) bool) bool { return e.count(pred) == len(e.nb) }

func heavyContribution(m *Molecule, i int, a *Atom) float64 {
	e := newEnv(m, i)
	switch a.Number() {
	case 6:
		if a.Aromatic {
			return aromaticCarbon(e)
		}
		return aliphaticCarbon(e)
	case 7:
		return nitrogen(e)
	case 8:
		return oxygen(e)
	case 9, 17, 35, 53:
		if a.Charge < 0 {
			return cHalide
		}
		switch a.Number() {
		case 9:
			return cF
		case 17:
			return cCl
		case 35:
			return cBr
		default:
			return cI
		}
	case 15:
		return cP
	case 16:
		switch {
		case a.Aromatic:
			return cS3
		case a.Charge != 0:
			return cS2
		default:
			return cS1
		}
	case 0, 1:
		return 0
	}
	if isMetal(a.Number()) {
		return cMetal
	}
	return cOtherEl
}

func aromaticCarbon(e env) float64 {
	if e.h == 0 && e.has(func(b *Bond, o *Atom) bool {
		return b.Order == BondSingle && !o.Aromatic && o.Number() != 1 && !isCommonOrganic(o.Number())
	}) {
		return cC13
	}
	for _, b := range e.nb {
		switch e.other(b).Number() {
		case 9:
			return cC14
		case 17:
			return cC15
		case 35:
			return cC16
		case 53:
			return cC17
		}
	}
	if e.h > 0 {
		return cC18
	}

	aromaticBonds := e.count(func(b *Bond, _ *Atom) bool { return b.Order == BondAromatic })
	if aromaticBonds >= 3 {
		return cC19
	}
	if aromaticBonds == 2 {
		for _, b := range e.nb {
			if b.Order == BondAromatic {
				continue
			}
			o := e.other(b)
			if b.Order == BondSingle {
				if o.Aromatic {
					return cC20
				}
				switch o.Number() {
				case 6:
					return cC21
				case 7:
					return cC22
				case 8:
					return cC23
				case 16:
					return cC24
				}
			}
			if b.Order == BondDouble && !o.Aromatic {
				switch o.Number() {
				case 6, 7, 8:
					return cC25
				}
			}
		}
	}
	return cCS
}

func aliphaticCarbon(e env) float64 {
	single := func(pred func(o *Atom) bool) func(b *Bond, o *Atom) bool {
		return func(b *Bond, o *Atom) bool { return singleLike(b) && pred(o) }
	}
	deg := len(e.nb)

	// C1: [CH4], [CH3]C, [CH2](C)C
	switch {
	case e.h == 4 && deg == 0,
		e.h == 3 && deg == 1 && e.all(single(aliphaticC)),
		e.h == 2 && deg == 2 && e.all(single(aliphaticC)):
		return cC1
	}
	// C2: [CH](C)(C)C, [C](C)(C)(C)C
	if (e.h == 1 && deg == 3 || e.h == 0 && deg == 4) && e.all(single(aliphaticC)) {
		return cC2
	}
	// C3: [CH3][hetero], [CH2X4]([hetero])[A]
	if e.h == 3 && deg == 1 && e.all(single(isHetero)) {
		return cC3
	}
	if e.h == 2 && e.x == 4 && e.has(single(isHetero)) && e.all(single(aliphaticHeavy)) {
		return cC3
	}
	// C4: [CH1X4]/[CH0X4] with a hetero neighbour and aliphatic heavy others
	if (e.h == 1 || e.h == 0) && e.x == 4 && e.has(single(isHetero)) && e.all(single(aliphaticHeavy)) {
		return cC4
	}
	// C5: [C]=[!C;A]
	if e.has(func(b *Bond, o *Atom) bool {
		return b.Order == BondDouble && !o.Aromatic && o.Number() != 6 && o.Number() != 1
	}) {
		return cC5
	}
	doubleToC := e.count(func(b *Bond, o *Atom) bool { return b.Order == BondDouble && aliphaticC(o) })
	aromaticNbr := e.has(func(_ *Bond, o *Atom) bool { return o.Aromatic })
	// C6: [CH2]=C, [CH1](=C)[A], [CH0](=C)([A])[A], [C](=C)=C
	if doubleToC > 0 && !aromaticNbr {
		switch {
		case doubleToC >= 2:
			return cC6
		case e.h == 2, e.h == 1 && deg == 2, e.h == 0 && deg == 3:
			return cC6
		}
	}
	// C7: [CX2]#A
	if e.x == 2 && e.has(func(b *Bond, o *Atom) bool { return b.Order == BondTriple && !o.Aromatic }) {
		return cC7
	}
	if aromaticNbr && e.x == 4 {
		switch e.h {
		case 3:
			// C8: [CH3]c, C9: [CH3]a
			if e.has(func(_ *Bond, o *Atom) bool { return o.Aromatic && o.Number() == 6 }) {
				return cC8
			}
			return cC9
		case 2:
			return cC10
		case 1:
			return cC11
		case 0:
			return cC12
		}
	}
	// C26: [C](=C)(a)A, [C](=C)(c)a, [CH](=C)a, [C]=c
	if doubleToC > 0 && aromaticNbr {
		return cC26
	}
	if e.has(func(b *Bond, o *Atom) bool { return b.Order == BondDouble && o.Aromatic && o.Number() == 6 }) {
		return cC26
	}
	// C27: [CX4][A;!C;!N;!O;!P;!S;!F;!Cl;!Br;!I]
	if e.x == 4 && e.has(func(_ *Bond, o *Atom) bool {
		return !o.Aromatic && o.Number() != 1 && !isCommonOrganic(o.Number())
	}) {
		return cC27
	}
	return cCS
}

func nitrogen(e env) float64 {
	a := e.a
	deg := len(e.nb)
	if a.Aromatic {
		switch {
		case a.Charge == 0:
			return cN11
		case a.Charge > 0:
			return cN12
		default:
			return cNS
		}
	}
	heavy := func(_ *Bond, o *Atom) bool { return o.Number() != 1 }
	singleAliphatic := func(b *Bond, o *Atom) bool { return b.Order == BondSingle && aliphaticHeavy(o) }
	aromaticNbr := e.count(func(_ *Bond, o *Atom) bool { return o.Aromatic })

	if a.Charge == 0 {
		switch {
		case e.h == 2 && deg == 1 && e.all(singleAliphatic):
			return cN1
		case e.h == 1 && deg == 2 && e.all(singleAliphatic):
			return cN2
		case e.h == 2 && deg == 1 && aromaticNbr == 1:
			return cN3
		case e.h == 1 && deg == 2 && aromaticNbr >= 1 && e.all(heavy):
			return cN4
		case e.h == 1 && e.has(func(b *Bond, o *Atom) bool { return b.Order == BondDouble && o.Number() != 1 }):
			return cN5
		case e.h == 0 && deg == 2 && e.has(func(b *Bond, o *Atom) bool { return b.Order == BondDouble && o.Number() != 1 }):
			return cN6
		case e.h == 0 && deg == 3 && e.all(singleAliphatic):
			return cN7
		case e.h == 0 && deg == 3 && aromaticNbr >= 1 && e.all(func(b *Bond, o *Atom) bool { return b.Order == BondSingle && o.Number() != 1 }):
			return cN8
		case e.has(func(b *Bond, o *Atom) bool { return b.Order == BondTriple && !o.Aromatic }):
			return cN9
		}
		return cNS
	}
	if a.Charge > 0 && e.h >= 1 && e.h <= 3 {
		return cN10
	}
	return cN13
}

func oxygen(e env) float64 {
	a := e.a
	deg := len(e.nb)
	if a.Aromatic {
		return cO1
	}
	if e.h >= 1 {
		return cO2
	}
	if deg == 2 && a.Charge == 0 {
		if e.all(func(b *Bond, o *Atom) bool { return b.Order == BondSingle && aliphaticHeavy(o) }) {
			return cO3
		}
		return cO4
	}
	if deg != 1 {
		return cOS
	}

	b := e.nb[0]
	o := e.other(b)
	if a.Charge < 0 {
		switch o.Number() {
		case 7:
			return cO5
		case 16:
			return cO6
		case 6:
			if hasDoubleTo(e.m, b.Other(e.i), 8, e.i) {
				return cO12
			}
		}
		return cO7
	}
	if b.Order != BondDouble {
		return cOS
	}

	switch {
	case o.Number() == 7 || o.Number() == 8:
		return cO5
	case o.Number() == 6 && o.Aromatic:
		return cO8
	case o.Number() == 6:
		return carbonylOxygen(e.m, b.Other(e.i), e.i)
	}
	return cOS
}

// carbonylOxygen types the O of an aliphatic C=O by the carbon's substituents.
func carbonylOxygen(m *Molecule, c, oxygenIdx int) float64 {
	ca := m.Atoms[c]
	h := ca.TotalH()
	var subs []*Atom
	for _, b := range m.AtomBonds(c) {
		j := b.Other(c)
		if j == oxygenIdx {
			continue
		}
		subs = append(subs, m.Atoms[j])
	}

	hasAliphC := false
	hasAromatic := false
	hasAromaticC := false
	for _, s := range subs {
		if aliphaticC(s) {
			hasAliphC = true
		}
		if s.Aromatic {
			hasAromatic = true
			if s.Number() == 6 {
				hasAromaticC = true
			}
		}
	}

	// O9
	switch {
	case h == 1 && hasAliphC:
		return cO9
	case len(subs) == 2 && hasAliphC && aliphaticHeavy(subs[0]) && aliphaticHeavy(subs[1]):
		return cO9
	case h == 1 && len(subs) == 1 && !subs[0].Aromatic && (subs[0].Number() == 7 || subs[0].Number() == 8):
		return cO9
	case h == 2:
		return cO9
	case len(subs) == 1 && h == 0 && !subs[0].Aromatic && subs[0].Number() == 8:
		return cO9
	}

	// O10
	switch {
	case h == 1 && hasAromaticC:
		return cO10
	case len(subs) == 2 && hasAromatic && (subs[0].Number() == 6 || subs[1].Number() == 6):
		return cO10
	}

	// O11: both substituents heavy non-carbon
	if len(subs) == 2 && subs[0].Number() != 6 && subs[1].Number() != 6 && subs[0].Number() != 1 && subs[1].Number() != 1 {
		return cO11
	}
	return cOS
}

// hasDoubleTo reports whether atom c has a double bond to an atom with
// atomic number z other than except.
func hasDoubleTo(m *Molecule, c, z, except int) bool {
	for _, b := range m.AtomBonds(c) {
		j := b.Other(c)
		if j != except && b.Order == BondDouble && m.Atoms[j].Number() == z {
			return true
		}
	}
	return false
}

func hydrogenContribution(m *Molecule, i int, a *Atom) float64 {
	switch a.Number() {
	case 6, 1:
		return cH1
	case 7:
		return cH3
	case 8:
		return hydroxylHydrogen(m, i)
	default:
		return cH2
	}
}

// hydroxylHydrogen types an H on oxygen by the oxygen's heavy neighbour.
func hydroxylHydrogen(m *Molecule, i int) float64 {
	nbrs := m.Neighbors(i)
	if len(nbrs) == 0 {
		// water: [#1]O[!#6;!#7;!#8;!#16] matches through the other hydrogen
		return cH2
	}
	j := nbrs[0]
	o := m.Atoms[j]
	switch {
	case o.Number() == 6 && !o.Aromatic && m.Connectivity(j) == 4:
		return cH2
	case o.Number() == 6 && o.Aromatic:
		return cH2
	case o.Number() != 6 && o.Number() != 7 && o.Number() != 8 && o.Number() != 16:
		return cH2
	case o.Number() == 7:
		return cH3
	case o.Number() == 6:
		for _, z := range []int{6, 7, 8, 16} {
			if hasDoubleTo(m, j, z, i) {
				return cH4
			}
		}
		return cHS
	case o.Number() == 8 || o.Number() == 16:
		return cH4
	}
	return cHS
}

//Personal.AI order the ending
