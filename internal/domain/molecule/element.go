package molecule

// Element describes the chemistry the parser and descriptor calculators need
// about one element.
type Element struct {
	Symbol string
	Number int

	// Mass is the standard average atomic weight.
	Mass float64

	// Valences lists allowed neutral valences in ascending order.  Empty means
	// the element is not valence checked (metals, noble gases).
	Valences []int
}

// organicSubset lists symbols usable without brackets.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// aromaticSymbols maps lowercase aromatic symbols to their element symbol.
// b, c, n, o, p, s are valid outside brackets; the rest only inside.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S",
	"se": "Se", "as": "As", "te": "Te", "si": "Si",
}

var elements = map[string]*Element{}
var elementsByNumber = map[int]*Element{}

func init() {
	for _, e := range elementTable {
		e := e
		elements[e.Symbol] = &e
		elementsByNumber[e.Number] = &e
	}
}

// LookupElement returns the element with the given symbol.
func LookupElement(symbol string) (*Element, bool) {
	e, ok := elements[symbol]
	return e, ok
}

// hydrogenMass is used for implicit and explicit hydrogen counts.
const hydrogenMass = 1.008

var elementTable = []Element{
	{"*", 0, 0, nil},
	{"H", 1, 1.008, []int{1}},
	{"He", 2, 4.003, nil},
	{"Li", 3, 6.941, nil},
	{"Be", 4, 9.012, nil},
	{"B", 5, 10.812, []int{3}},
	{"C", 6, 12.011, []int{4}},
	{"N", 7, 14.007, []int{3}},
	{"O", 8, 15.999, []int{2}},
	{"F", 9, 18.998, []int{1}},
	{"Ne", 10, 20.18, nil},
	{"Na", 11, 22.99, nil},
	{"Mg", 12, 24.305, nil},
	{"Al", 13, 26.982, nil},
	{"Si", 14, 28.086, []int{4}},
	{"P", 15, 30.974, []int{3, 5, 7}},
	{"S", 16, 32.067, []int{2, 4, 6}},
	{"Cl", 17, 35.453, []int{1}},
	{"Ar", 18, 39.948, nil},
	{"K", 19, 39.098, nil},
	{"Ca", 20, 40.078, nil},
	{"Ti", 22, 47.867, nil},
	{"V", 23, 50.942, nil},
	{"Cr", 24, 51.996, nil},
	{"Mn", 25, 54.938, nil},
	{"Fe", 26, 55.845, nil},
	{"Co", 27, 58.933, nil},
	{"Ni", 28, 58.693, nil},
	{"Cu", 29, 63.546, nil},
	{"Zn", 30, 65.39, nil},
	{"Ga", 31, 69.723, nil},
	{"Ge", 32, 72.61, []int{4}},
	{"As", 33, 74.922, []int{3, 5}},
	{"Se", 34, 78.96, []int{2, 4, 6}},
	{"Br", 35, 79.904, []int{1}},
	{"Kr", 36, 83.8, nil},
	{"Rb", 37, 85.468, nil},
	{"Sr", 38, 87.62, nil},
	{"Zr", 40, 91.224, nil},
	{"Mo", 42, 95.94, nil},
	{"Tc", 43, 98.0, nil},
	{"Ru", 44, 101.07, nil},
	{"Rh", 45, 102.906, nil},
	{"Pd", 46, 106.42, nil},
	{"Ag", 47, 107.868, nil},
	{"Cd", 48, 112.411, nil},
	{"In", 49, 114.818, nil},
	{"Sn", 50, 118.71, nil},
	{"Sb", 51, 121.76, []int{3, 5}},
	{"Te", 52, 127.6, []int{2, 4, 6}},
	{"I", 53, 126.904, []int{1, 3, 5}},
	{"Xe", 54, 131.29, nil},
	{"Cs", 55, 132.905, nil},
	{"Ba", 56, 137.327, nil},
	{"Gd", 64, 157.25, nil},
	{"W", 74, 183.84, nil},
	{"Os", 76, 190.23, nil},
	{"Ir", 77, 192.217, nil},
	{"Pt", 78, 195.078, nil},
	{"Au", 79, 196.967, nil},
	{"Hg", 80, 200.59, nil},
	{"Tl", 81, 204.383, nil},
	{"Pb", 82, 207.2, nil},
	{"Bi", 83, 208.98, nil},
	{"Rn", 86, 222.0, nil},
	{"Ra", 88, 226.0, nil},
	{"U", 92, 238.029, nil},
}

// isMetal reports whether the atomic number belongs to a metal for the
// purposes of the logP contribution table.
func isMetal(n int) bool {
	switch n {
	case 3, 4, 11, 12, 13, 19, 20, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31,
		37, 38, 40, 42, 43, 44, 45, 46, 47, 48, 49, 50, 55, 56, 64, 74, 76,
		77, 78, 79, 80, 81, 82, 83, 88, 92:
		return true
	}
	return false
}

// isoelectronicValences returns the valence list used to check an atom of
// atomic number n carrying charge.  Charged main-group atoms are treated as
// their isoelectronic neutral neighbour (N+ like C, O- like F, C- like N).
func isoelectronicValences(n, charge int) []int {
	e, ok := elementsByNumber[n]
	if !ok || len(e.Valences) == 0 {
		return nil
	}
	if charge == 0 {
		return e.Valences
	}
	shifted, ok := elementsByNumber[n-charge]
	if !ok || len(shifted.Valences) == 0 || shifted.Number < 5 {
		return nil
	}
	// stay within the same period: B..F, Al..Cl, Ga..Br, In..I
	if periodOf(shifted.Number) != periodOf(n) {
		return nil
	}
	return shifted.Valences
}

func periodOf(n int) int {
	switch {
	case n <= 2:
		return 1
	case n <= 10:
		return 2
	case n <= 18:
		return 3
	case n <= 36:
		return 4
	case n <= 54:
		return 5
	default:
		return 6
	}
}

// smallestValenceAtLeast returns the smallest allowed valence ≥ v, or -1.
func smallestValenceAtLeast(valences []int, v int) int {
	for _, allowed := range valences {
		if allowed >= v {
			return allowed
		}
	}
	return -1
}

//Personal.AI order the ending
