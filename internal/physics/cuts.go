package physics

import (
	"fmt"

	"github.com/lobis/restG4/internal/ir"
)

// AssignCuts builds the production cut table.
//
// Every species starts from the universal default (ir.DefaultCut unless the
// description overrides it globally); declared per-species overrides replace
// the default for that species only. The muon cut applies to both charges.
//
// Non-positive lengths return ErrCodeInvalidCut and a non-positive or
// inverted window returns ErrCodeInvalidCutWindow. Nothing is clamped.
func AssignCuts(cfg *ir.PhysicsConfig) (ir.CutTable, error) {
	def := ir.DefaultCut
	if cfg.Cuts.Default != nil {
		def = *cfg.Cuts.Default
	}

	table := ir.CutTable{
		Default:  def,
		Gamma:    def,
		Electron: def,
		Positron: def,
		Muon:     def,
		Neutron:  def,
	}

	var invalid []string
	apply := func(species string, override *ir.Length, dst *ir.Length) {
		if override == nil {
			return
		}
		if *override <= 0 {
			invalid = append(invalid, fmt.Sprintf("%s=%s", species, *override))
			return
		}
		*dst = *override
	}

	if def <= 0 {
		invalid = append(invalid, fmt.Sprintf("default=%s", def))
	}
	apply("gamma", cfg.Cuts.Gamma, &table.Gamma)
	apply("electron", cfg.Cuts.Electron, &table.Electron)
	apply("positron", cfg.Cuts.Positron, &table.Positron)
	apply("muon", cfg.Cuts.Muon, &table.Muon)
	apply("neutron", cfg.Cuts.Neutron, &table.Neutron)

	if len(invalid) > 0 {
		return ir.CutTable{}, &ResolveError{
			Code:    ErrCodeInvalidCut,
			Message: "production cuts must be positive lengths",
			Names:   invalid,
		}
	}

	window := cfg.EnergyWindowOrDefault()
	if err := validateWindow(window); err != nil {
		return ir.CutTable{}, err
	}
	table.Window = window

	return table, nil
}

func validateWindow(w ir.EnergyWindow) error {
	if w.Min <= 0 || w.Max <= 0 {
		return &ResolveError{
			Code:    ErrCodeInvalidCutWindow,
			Message: fmt.Sprintf("energy window bounds must be positive, got %s", w),
		}
	}
	if w.Min > w.Max {
		return &ResolveError{
			Code:    ErrCodeInvalidCutWindow,
			Message: fmt.Sprintf("energy window is inverted: min %s > max %s", w.Min, w.Max),
		}
	}
	return nil
}
