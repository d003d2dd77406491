package molecule

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// maxKekuleSteps bounds the backtracking search that localizes aromatic bonds.
const maxKekuleSteps = 200000

// ParseSMILES interprets s as a SMILES string.  It returns a
// CodeInvalidSMILES error describing the first problem found; the error is
// meant to be recorded per record, never to abort a batch.
func ParseSMILES(s string) (*Molecule, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, errors.New(errors.CodeInvalidSMILES, "empty SMILES")
	}

	p := &smilesParser{src: trimmed, mol: newMolecule(trimmed), prev: -1, rings: map[int]ringOpening{}}
	if err := p.parse(); err != nil {
		return nil, errors.Newf(errors.CodeInvalidSMILES, "invalid SMILES %q", trimmed).WithCause(err).WithDetail(err.Error())
	}

	m := p.mol
	steps := []func(*Molecule) error{
		foldExplicitHydrogens,
		perceiveRings,
		checkAromaticRings,
		assignHydrogens,
		kekulize,
		checkValences,
	}
	for _, step := range steps {
		if err := step(m); err != nil {
			return nil, errors.Newf(errors.CodeInvalidSMILES, "invalid SMILES %q", trimmed).WithCause(err).WithDetail(err.Error())
		}
	}
	return m, nil
}

type ringOpening struct {
	atom  int
	order BondOrder
	set   bool
}

type smilesParser struct {
	src      string
	pos      int
	mol      *Molecule
	prev     int
	branches []int
	rings    map[int]ringOpening

	bond    BondOrder
	bondSet bool
}

func (p *smilesParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("position %d: %s", p.pos+1, fmt.Sprintf(format, args...))
}

func (p *smilesParser) parse() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.errorf("branch without a preceding atom")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++
		case c == ')':
			if len(p.branches) == 0 {
				return p.errorf("unbalanced ')'")
			}
			if p.bondSet {
				return p.errorf("bond symbol before ')'")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++
		case strings.IndexByte("-=#$:/\\", c) >= 0:
			if p.bondSet {
				return p.errorf("consecutive bond symbols")
			}
			if p.prev < 0 {
				return p.errorf("bond symbol without a preceding atom")
			}
			p.bond = bondOrderFor(c)
			p.bondSet = true
			p.pos++
		case c == '.':
			if p.bondSet {
				return p.errorf("bond symbol before '.'")
			}
			if p.prev < 0 {
				return p.errorf("'.' without a preceding atom")
			}
			p.prev = -1
			p.pos++
		case c >= '0' && c <= '9', c == '%':
			if err := p.parseRingClosure(); err != nil {
				return err
			}
		case c == '[':
			if err := p.parseBracketAtom(); err != nil {
				return err
			}
		default:
			if err := p.parseOrganicAtom(); err != nil {
				return err
			}
		}
	}

	if len(p.branches) > 0 {
		return fmt.Errorf("unclosed branch '('")
	}
	if p.bondSet {
		return fmt.Errorf("dangling bond symbol at end")
	}
	for num := range p.rings {
		return fmt.Errorf("unclosed ring %d", num)
	}
	if len(p.mol.Atoms) == 0 {
		return fmt.Errorf("no atoms")
	}
	return nil
}

func bondOrderFor(c byte) BondOrder {
	switch c {
	case '=':
		return BondDouble
	case '#':
		return BondTriple
	case '$':
		return BondQuadruple
	case ':':
		return BondAromatic
	default:
		return BondSingle
	}
}

func (p *smilesParser) defaultOrder(a, b int) BondOrder {
	if p.mol.Atoms[a].Aromatic && p.mol.Atoms[b].Aromatic {
		return BondAromatic
	}
	return BondSingle
}

func (p *smilesParser) attach(idx int) error {
	if p.prev >= 0 {
		order := p.bond
		if !p.bondSet {
			order = p.defaultOrder(p.prev, idx)
		}
		if _, err := p.mol.addBond(p.prev, idx, order); err != nil {
			return p.errorf("%v", err)
		}
	}
	p.prev = idx
	p.bondSet = false
	return nil
}

func (p *smilesParser) parseOrganicAtom() error {
	rest := p.src[p.pos:]
	var sym string
	aromatic := false
	switch {
	case strings.HasPrefix(rest, "Cl"):
		sym = "Cl"
	case strings.HasPrefix(rest, "Br"):
		sym = "Br"
	case rest[0] == '*':
		sym = "*"
	default:
		one := rest[:1]
		if organicSubset[one] {
			sym = one
		} else if el, ok := aromaticSymbols[one]; ok {
			sym = el
			aromatic = true
		} else {
			return p.errorf("unexpected character %q", rest[0])
		}
	}

	e, _ := LookupElement(sym)
	idx := p.mol.addAtom(&Atom{Element: e, Aromatic: aromatic})
	if aromatic {
		p.pos++
	} else {
		p.pos += len(sym)
	}
	return p.attach(idx)
}

func (p *smilesParser) parseBracketAtom() error {
	start := p.pos
	end := strings.IndexByte(p.src[start:], ']')
	if end < 0 {
		return p.errorf("unclosed '['")
	}
	body := p.src[start+1 : start+end]
	p.pos = start + end + 1

	a, err := parseBracketBody(body)
	if err != nil {
		return fmt.Errorf("position %d: bracket atom [%s]: %w", start+1, body, err)
	}
	idx := p.mol.addAtom(a)
	return p.attach(idx)
}

func parseBracketBody(body string) (*Atom, error) {
	i := 0
	isotope := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		isotope = isotope*10 + int(body[i]-'0')
		i++
	}
	if i >= len(body) {
		return nil, fmt.Errorf("missing element symbol")
	}

	a := &Atom{Bracket: true, Isotope: isotope}
	switch {
	case body[i] == '*':
		a.Element, _ = LookupElement("*")
		i++
	case unicode.IsLower(rune(body[i])):
		matched := false
		if i+2 <= len(body) {
			if el, ok := aromaticSymbols[body[i:i+2]]; ok {
				a.Element, _ = LookupElement(el)
				matched = true
				i += 2
			}
		}
		if !matched {
			el, ok := aromaticSymbols[body[i:i+1]]
			if !ok {
				return nil, fmt.Errorf("unknown aromatic symbol %q", body[i:i+1])
			}
			a.Element, _ = LookupElement(el)
			i++
		}
		a.Aromatic = true
	case unicode.IsUpper(rune(body[i])):
		if i+2 <= len(body) && unicode.IsLower(rune(body[i+1])) {
			if e, ok := LookupElement(body[i : i+2]); ok {
				a.Element = e
				i += 2
				break
			}
		}
		e, ok := LookupElement(body[i : i+1])
		if !ok {
			return nil, fmt.Errorf("unknown element %q", body[i:i+1])
		}
		a.Element = e
		i++
	default:
		return nil, fmt.Errorf("unexpected character %q", body[i])
	}

	// chirality is accepted and ignored
	if i < len(body) && body[i] == '@' {
		i++
		if i < len(body) && body[i] == '@' {
			i++
		} else {
			for i < len(body) && (unicode.IsUpper(rune(body[i])) && body[i] != 'H' || unicode.IsDigit(rune(body[i]))) {
				i++
			}
		}
	}

	if i < len(body) && body[i] == 'H' {
		i++
		h := 1
		if i < len(body) && unicode.IsDigit(rune(body[i])) {
			h = int(body[i] - '0')
			i++
		}
		a.ExplicitH = h
	}

	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		sym := body[i]
		i++
		magnitude := 1
		if i < len(body) && unicode.IsDigit(rune(body[i])) {
			magnitude = 0
			for i < len(body) && unicode.IsDigit(rune(body[i])) {
				magnitude = magnitude*10 + int(body[i]-'0')
				i++
			}
		} else {
			for i < len(body) && body[i] == sym {
				magnitude++
				i++
			}
		}
		a.Charge = sign * magnitude
	}

	if i < len(body) && body[i] == ':' {
		i++
		if i >= len(body) {
			return nil, fmt.Errorf("missing atom class")
		}
		for i < len(body) && unicode.IsDigit(rune(body[i])) {
			a.Class = a.Class*10 + int(body[i]-'0')
			i++
		}
	}

	if i != len(body) {
		return nil, fmt.Errorf("unexpected %q", body[i:])
	}
	return a, nil
}

func (p *smilesParser) parseRingClosure() error {
	if p.prev < 0 {
		return p.errorf("ring closure without a preceding atom")
	}
	var num int
	if p.src[p.pos] == '%' {
		if p.pos+2 >= len(p.src) || !unicode.IsDigit(rune(p.src[p.pos+1])) || !unicode.IsDigit(rune(p.src[p.pos+2])) {
			return p.errorf("'%%' must be followed by two digits")
		}
		num = int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0')
		p.pos += 3
	} else {
		num = int(p.src[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[num]
	if !ok {
		p.rings[num] = ringOpening{atom: p.prev, order: p.bond, set: p.bondSet}
		p.bondSet = false
		return nil
	}

	delete(p.rings, num)
	var order BondOrder
	switch {
	case open.set && p.bondSet && open.order != p.bond:
		return p.errorf("conflicting bond orders for ring closure %d", num)
	case p.bondSet:
		order = p.bond
	case open.set:
		order = open.order
	default:
		order = p.defaultOrder(open.atom, p.prev)
	}
	p.bondSet = false
	if _, err := p.mol.addBond(open.atom, p.prev, order); err != nil {
		return p.errorf("ring closure %d: %v", num, err)
	}
	return nil
}

// foldExplicitHydrogens removes plain [H] atoms bonded to exactly one heavy
// atom and adds them to that atom's hydrogen count.
func foldExplicitHydrogens(m *Molecule) error {
	remove := make([]bool, len(m.Atoms))
	folded := false
	for i, a := range m.Atoms {
		if a.Number() != 1 || a.Isotope != 0 || a.Charge != 0 || a.ExplicitH != 0 || m.Degree(i) != 1 {
			continue
		}
		b := m.Bonds[m.adj[i][0]]
		if b.Order != BondSingle {
			continue
		}
		nb := m.Atoms[b.Other(i)]
		if nb.Number() == 1 {
			continue
		}
		nb.ExplicitH++
		remove[i] = true
		folded = true
	}
	if !folded {
		return nil
	}

	remap := make([]int, len(m.Atoms))
	var atoms []*Atom
	for i, a := range m.Atoms {
		if remove[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(atoms)
		a.Index = len(atoms)
		atoms = append(atoms, a)
	}
	var bonds []*Bond
	adj := make([][]int, len(atoms))
	for _, b := range m.Bonds {
		if remap[b.Begin] < 0 || remap[b.End] < 0 {
			continue
		}
		b.Begin, b.End = remap[b.Begin], remap[b.End]
		b.Index = len(bonds)
		bonds = append(bonds, b)
		adj[b.Begin] = append(adj[b.Begin], b.Index)
		adj[b.End] = append(adj[b.End], b.Index)
	}
	m.Atoms, m.Bonds, m.adj = atoms, bonds, adj
	return nil
}

// checkAromaticRings rejects aromatic atoms outside rings and demotes
// aromatic bonds that do not lie in a ring (biphenyl-style links) to single.
func checkAromaticRings(m *Molecule) error {
	for i, a := range m.Atoms {
		if a.Aromatic && !a.InRing {
			return fmt.Errorf("non-ring atom %d (%s) marked aromatic", i+1, strings.ToLower(a.Symbol()))
		}
	}
	for _, b := range m.Bonds {
		if b.Order != BondAromatic {
			continue
		}
		if !b.InRing || !m.Atoms[b.Begin].Aromatic || !m.Atoms[b.End].Aromatic {
			b.Order = BondSingle
			b.Kekule = BondSingle
		}
	}
	return nil
}

// explicitOrderSum sums bond orders counting aromatic bonds as 1.
func explicitOrderSum(m *Molecule, i int) (sum int, exocyclicMultiple bool) {
	for _, b := range m.AtomBonds(i) {
		if b.Order == BondAromatic {
			sum++
			continue
		}
		sum += int(b.Order)
		if b.Order >= BondDouble {
			exocyclicMultiple = true
		}
	}
	return sum, exocyclicMultiple
}

// assignHydrogens infers implicit hydrogens for organic-subset atoms and
// marks aromatic atoms that still need a localized double bond.
func assignHydrogens(m *Molecule) error {
	for i, a := range m.Atoms {
		sum, exo := explicitOrderSum(m, i)
		switch {
		case a.Bracket:
			continue
		case a.Number() == 0:
			continue
		case !a.Aromatic:
			valences := a.Element.Valences
			target := smallestValenceAtLeast(valences, sum+a.ExplicitH)
			if target < 0 {
				return fmt.Errorf("explicit valence %d for atom %d (%s) is greater than permitted", sum+a.ExplicitH, i+1, a.Symbol())
			}
			a.ImplicitH = target - sum - a.ExplicitH
		default:
			h, err := aromaticImplicitH(a, sum, exo)
			if err != nil {
				return fmt.Errorf("atom %d (%s): %w", i+1, strings.ToLower(a.Symbol()), err)
			}
			a.ImplicitH = h
		}
	}
	return nil
}

func aromaticImplicitH(a *Atom, sum int, exo bool) (int, error) {
	switch a.Number() {
	case 6:
		pi := 1
		if exo {
			pi = 0
		}
		h := 4 - sum - pi - a.ExplicitH
		if h < 0 {
			return 0, fmt.Errorf("explicit valence %d is greater than permitted", sum+pi)
		}
		return h, nil
	case 5, 7, 15:
		if sum > 3 && a.Number() != 15 {
			return 0, fmt.Errorf("explicit valence %d is greater than permitted", sum)
		}
		return 0, nil
	case 8:
		if sum > 2 {
			return 0, fmt.Errorf("explicit valence %d is greater than permitted", sum)
		}
		return 0, nil
	default:
		return 0, nil
	}
}

// needsDouble reports whether aromatic atom i must take one localized double
// bond inside the aromatic system.
func needsDouble(m *Molecule, i int) bool {
	a := m.Atoms[i]
	if !a.Aromatic {
		return false
	}
	sum, exo := explicitOrderSum(m, i)
	if exo {
		return false
	}
	current := sum + a.TotalH()

	if !a.Bracket {
		switch a.Number() {
		case 6:
			return true
		case 5, 7, 15:
			return current == 2
		default:
			return false
		}
	}

	valences := isoelectronicValences(a.Number(), a.Charge)
	if len(valences) == 0 {
		return false
	}
	if a.Number() == 8 || a.Number() == 16 || a.Number() == 34 || a.Number() == 52 {
		// lone-pair donors in five-membered heteroaromatics
		if a.Charge == 0 && current == 2 {
			return false
		}
	}
	target := smallestValenceAtLeast(valences, current)
	return target > current
}

// kekulize assigns alternating single/double orders to aromatic ring bonds so
// every atom that needs a double bond gets exactly one.
func kekulize(m *Molecule) error {
	need := make([]bool, len(m.Atoms))
	anyAromatic := false
	for i := range m.Atoms {
		need[i] = needsDouble(m, i)
		if m.Atoms[i].Aromatic {
			anyAromatic = true
		}
	}
	if !anyAromatic {
		return nil
	}

	k := &kekulizer{m: m, need: need, mate: make([]int, len(m.Atoms))}
	for i := range k.mate {
		k.mate[i] = -1
	}
	if !k.solve() {
		return fmt.Errorf("can't kekulize aromatic system")
	}
	for _, b := range m.Bonds {
		if b.Order != BondAromatic {
			continue
		}
		if k.mate[b.Begin] == b.End {
			b.Kekule = BondDouble
		} else {
			b.Kekule = BondSingle
		}
	}
	return nil
}

type kekulizer struct {
	m     *Molecule
	need  []bool
	mate  []int
	steps int
}

func (k *kekulizer) candidates(i int) []int {
	var out []int
	for _, b := range k.m.AtomBonds(i) {
		if b.Order != BondAromatic {
			continue
		}
		j := b.Other(i)
		if k.need[j] && k.mate[j] < 0 {
			out = append(out, j)
		}
	}
	return out
}

func (k *kekulizer) solve() bool {
	k.steps++
	if k.steps > maxKekuleSteps {
		return false
	}
	best, bestCands := -1, []int(nil)
	for i := range k.m.Atoms {
		if !k.need[i] || k.mate[i] >= 0 {
			continue
		}
		cands := k.candidates(i)
		if len(cands) == 0 {
			return false
		}
		if best < 0 || len(cands) < len(bestCands) {
			best, bestCands = i, cands
		}
	}
	if best < 0 {
		return true
	}
	for _, j := range bestCands {
		k.mate[best], k.mate[j] = j, best
		if k.solve() {
			return true
		}
		k.mate[best], k.mate[j] = -1, -1
	}
	return false
}

// checkValences verifies the localized valence of every atom whose element
// has a known valence list.
func checkValences(m *Molecule) error {
	for i, a := range m.Atoms {
		valences := isoelectronicValences(a.Number(), a.Charge)
		if len(valences) == 0 {
			continue
		}
		v := m.Valence(i)
		if v > valences[len(valences)-1] {
			return fmt.Errorf("explicit valence %d for atom %d (%s) is greater than permitted", v, i+1, a.Symbol())
		}
	}
	return nil
}

//Personal.AI order the ending
