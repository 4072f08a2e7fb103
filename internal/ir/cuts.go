package ir

// Species names used by the production cut table and the step limiter plan.
const (
	SpeciesGamma     = "gamma"
	SpeciesElectron  = "e-"
	SpeciesPositron  = "e+"
	SpeciesMuonPlus  = "mu+"
	SpeciesMuonMinus = "mu-"
	SpeciesNeutron   = "neutron"
)

// DefaultCut is the universal production cut applied when no global
// override is declared.
const DefaultCut = 100 * Micrometre

// CutTable is the resolved production cut table. Every length is positive
// and Window.Min <= Window.Max.
type CutTable struct {
	Default  Length       `json:"default"`
	Gamma    Length       `json:"gamma"`
	Electron Length       `json:"electron"`
	Positron Length       `json:"positron"`
	Muon     Length       `json:"muon"`
	Neutron  Length       `json:"neutron"`
	Window   EnergyWindow `json:"energy_window"`
}

// SpeciesCut is one per-species entry of the cut table.
type SpeciesCut struct {
	Species string `json:"species"`
	Cut     Length `json:"cut"`
}

// SpeciesCuts returns the per-species cuts in application order:
// gamma, e-, e+, mu+, mu-, neutron. The muon cut is shared by both charges.
func (t CutTable) SpeciesCuts() []SpeciesCut {
	return []SpeciesCut{
		{Species: SpeciesGamma, Cut: t.Gamma},
		{Species: SpeciesElectron, Cut: t.Electron},
		{Species: SpeciesPositron, Cut: t.Positron},
		{Species: SpeciesMuonPlus, Cut: t.Muon},
		{Species: SpeciesMuonMinus, Cut: t.Muon},
		{Species: SpeciesNeutron, Cut: t.Neutron},
	}
}
