package ir

import (
	"fmt"
	"strings"
)

// Category classifies a physics module. It is derived from the module name
// by the registry and never supplied by the caller.
type Category string

const (
	CategoryDecay            Category = "decay"
	CategoryRadioactiveDecay Category = "radioactive_decay"
	CategoryElectromagnetic  Category = "electromagnetic"
	CategoryHadronic         Category = "hadronic"
)

// ModuleSpec is one configured physics module, in declaration order.
type ModuleSpec struct {
	Name    string            `json:"name"`
	Options map[string]string `json:"options,omitempty"`
}

// Option returns the raw value of a module option and whether it was set.
func (m ModuleSpec) Option(key string) (string, bool) {
	v, ok := m.Options[key]
	return v, ok
}

// Verbosity gates diagnostic output. Diagnostics are always recorded;
// only their emission depends on the configured level.
type Verbosity int

const (
	VerbositySilent Verbosity = iota
	VerbosityEssential
	VerbosityInfo
	VerbosityDebug
	VerbosityExtreme
)

var verbosityNames = []string{"silent", "essential", "info", "debug", "extreme"}

func (v Verbosity) String() string {
	if v < 0 || int(v) >= len(verbosityNames) {
		return fmt.Sprintf("verbosity(%d)", int(v))
	}
	return verbosityNames[v]
}

// ParseVerbosity parses a verbosity level name (case-insensitive).
func ParseVerbosity(s string) (Verbosity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range verbosityNames {
		if n == name {
			return Verbosity(i), nil
		}
	}
	return VerbositySilent, fmt.Errorf("unknown verbosity level %q: must be one of %v", s, verbosityNames)
}

// CutOverrides holds the declared per-species production cuts.
// A nil field means "not declared"; the universal default applies.
type CutOverrides struct {
	Default  *Length `json:"default,omitempty"`
	Gamma    *Length `json:"gamma,omitempty"`
	Electron *Length `json:"electron,omitempty"`
	Positron *Length `json:"positron,omitempty"`
	Muon     *Length `json:"muon,omitempty"`
	Neutron  *Length `json:"neutron,omitempty"`
}

// EnergyWindow bounds the energies covered by the production cut table.
type EnergyWindow struct {
	Min Energy `json:"min"`
	Max Energy `json:"max"`
}

func (w EnergyWindow) String() string {
	return fmt.Sprintf("[%s, %s]", w.Min, w.Max)
}

// Default production energy window when none is declared.
var DefaultEnergyWindow = EnergyWindow{Min: 1 * KiloElectronVolt, Max: 1 * GigaElectronVolt}

// RadioactiveDecayOptions are read only by the radioactive decay module.
// A nil flag is unset: the engine default applies and a diagnostic is emitted.
type RadioactiveDecayOptions struct {
	InternalConversion  *bool `json:"internal_conversion,omitempty"`
	AtomicRearrangement *bool `json:"atomic_rearrangement,omitempty"`
}

// PhysicsConfig is the parsed, immutable view of the declarative physics
// description.
type PhysicsConfig struct {
	Verbosity        Verbosity               `json:"verbosity"`
	Modules          []ModuleSpec            `json:"modules"`
	Cuts             CutOverrides            `json:"cuts"`
	CutEnergyWindow  *EnergyWindow           `json:"cut_energy_window,omitempty"`
	IonStepNames     []string                `json:"ion_step_names,omitempty"`
	RadioactiveDecay RadioactiveDecayOptions `json:"radioactive_decay"`
}

// EnergyWindowOrDefault returns the declared window, or DefaultEnergyWindow.
func (c *PhysicsConfig) EnergyWindowOrDefault() EnergyWindow {
	if c.CutEnergyWindow == nil {
		return DefaultEnergyWindow
	}
	return *c.CutEnergyWindow
}

// EMOptions are the module-scoped toggles of the electromagnetic module.
type EMOptions struct {
	Fluorescence bool `json:"fluorescence"`
	Auger        bool `json:"auger"`
	PIXE         bool `json:"pixe"`
}

// Diagnostic codes recorded during resolution.
const (
	DiagNoEMPhysics         = "NO_EM_PHYSICS"
	DiagMissingModuleOption = "MISSING_MODULE_OPTION"
	DiagInvalidModuleOption = "INVALID_MODULE_OPTION"
	DiagModuleNotEnabled    = "MODULE_NOT_ENABLED"
	DiagHadronicCount       = "HADRONIC_COUNT"
)

// Diagnostic is an advisory condition found during resolution. It never
// stops the run.
type Diagnostic struct {
	Code    string    `json:"code"`
	Level   Verbosity `json:"level"`
	Message string    `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}
