package physics

import (
	"sort"

	"github.com/lobis/restG4/internal/ir"
)

// Canonical module names known to the registry.
const (
	ModuleDecay = "G4DecayPhysics"

	ModuleRadioactiveDecayPhysics = "G4RadioactiveDecayPhysics"
	ModuleRadioactiveDecay        = "G4RadioactiveDecay"

	ModuleEmLivermore       = "G4EmLivermorePhysics"
	ModuleEmPenelope        = "G4EmPenelopePhysics"
	ModuleEmStandardOption3 = "G4EmStandardPhysics_option3"
	ModuleEmStandardOption4 = "G4EmStandardPhysics_option4"

	ModuleHadronQGSPBICHP    = "G4HadronPhysicsQGSP_BIC_HP"
	ModuleIonBinaryCascade   = "G4IonBinaryCascadePhysics"
	ModuleHadronElasticHP    = "G4HadronElasticPhysicsHP"
	ModuleNeutronTrackingCut = "G4NeutronTrackingCut"
	ModuleEmExtra            = "G4EmExtraPhysics"
	ModuleHadronElastic      = "G4HadronElasticPhysics"
	ModuleStopping           = "G4StoppingPhysics"
)

// Entry is a registry row: the module category and its factory.
type Entry struct {
	Category ir.Category
	New      Factory
}

// Registry maps canonical module names to entries. It is a static table:
// there is no fuzzy matching and an absent name simply means "not requested".
type Registry struct {
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// DefaultRegistry returns the closed set of modules the engine provides.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ModuleDecay, ir.CategoryDecay, nil)

	r.Register(ModuleRadioactiveDecayPhysics, ir.CategoryRadioactiveDecay, nil)
	r.Register(ModuleRadioactiveDecay, ir.CategoryRadioactiveDecay, nil)

	for _, name := range []string{ModuleEmLivermore, ModuleEmPenelope, ModuleEmStandardOption3, ModuleEmStandardOption4} {
		r.Register(name, ir.CategoryElectromagnetic, nil)
	}

	for _, name := range []string{
		ModuleHadronQGSPBICHP,
		ModuleIonBinaryCascade,
		ModuleHadronElasticHP,
		ModuleNeutronTrackingCut,
		ModuleEmExtra,
		ModuleHadronElastic,
		ModuleStopping,
	} {
		r.Register(name, ir.CategoryHadronic, nil)
	}

	return r
}

// Register adds or replaces a module. A nil factory registers a module
// constructed by the engine under its canonical name.
func (r *Registry) Register(name string, category ir.Category, factory Factory) {
	if factory == nil {
		factory = engineFactory(name, category)
	}
	r.entries[name] = Entry{Category: category, New: factory}
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered names of a category, sorted.
func (r *Registry) Names(category ir.Category) []string {
	var names []string
	for name, e := range r.entries {
		if e.Category == category {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
