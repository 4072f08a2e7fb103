package physics

import "fmt"

// Ion sweep bounds. The sweep is a closed enumeration: Z in [IonSweepMinZ,
// IonSweepMaxZ] and, for each Z, A in [2Z, 3Z].
const (
	IonSweepMinZ = 1
	IonSweepMaxZ = 40
)

// elementSymbols[Z-1] is the symbol of element Z.
var elementSymbols = [...]string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U",
}

// IonNamer derives the canonical ground-state name of ion (z, a).
type IonNamer interface {
	IonName(z, a int) (string, bool)
}

// GroundStateNamer names ions as element symbol followed by mass number,
// e.g. "C14" for (6, 14).
type GroundStateNamer struct{}

// IonName implements IonNamer.
func (GroundStateNamer) IonName(z, a int) (string, bool) {
	if z < 1 || z > len(elementSymbols) || a < z {
		return "", false
	}
	return fmt.Sprintf("%s%d", elementSymbols[z-1], a), true
}

// IonName returns the canonical ground-state name of ion (z, a).
func IonName(z, a int) (string, bool) {
	return GroundStateNamer{}.IonName(z, a)
}
