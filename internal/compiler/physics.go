package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/lobis/restG4/internal/ir"
)

// PhysicsPath is the path of the physics description inside a CUE root value.
const PhysicsPath = "physics"

// CompileRoot looks up the physics struct in a loaded CUE value and compiles it.
func CompileRoot(root cue.Value) (*ir.PhysicsConfig, error) {
	if err := root.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	v := root.LookupPath(cue.ParsePath(PhysicsPath))
	if !v.Exists() {
		return nil, &CompileError{
			Field:   PhysicsPath,
			Message: "physics is required",
			Pos:     root.Pos(),
		}
	}
	return CompilePhysics(v)
}

// CompilePhysics parses a CUE value into a PhysicsConfig.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the physics struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`physics: { modules: [{name: "G4EmLivermorePhysics"}] }`)
//	cfg, err := CompilePhysics(v.LookupPath(cue.ParsePath("physics")))
//
// Schema-level consistency (positive cuts, ordered window) is left to
// Validate and the resolver; this function only extracts values.
func CompilePhysics(v cue.Value) (*ir.PhysicsConfig, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	cfg := &ir.PhysicsConfig{Verbosity: ir.VerbosityEssential}

	// Parse verboseLevel (optional)
	if lv := v.LookupPath(cue.ParsePath("verboseLevel")); lv.Exists() {
		s, err := lv.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		verbosity, err := ir.ParseVerbosity(s)
		if err != nil {
			return nil, &CompileError{Field: "verboseLevel", Message: err.Error(), Pos: lv.Pos()}
		}
		cfg.Verbosity = verbosity
	}

	// Parse modules (optional, may be empty)
	modules, err := parseModules(v)
	if err != nil {
		return nil, err
	}
	cfg.Modules = modules

	// Parse cuts (optional)
	if cfg.Cuts, err = parseCuts(v); err != nil {
		return nil, err
	}

	// Parse cutEnergyWindow (optional, both bounds required when present)
	if wv := v.LookupPath(cue.ParsePath("cutEnergyWindow")); wv.Exists() {
		window, err := parseWindow(wv)
		if err != nil {
			return nil, err
		}
		cfg.CutEnergyWindow = window
	}

	// Parse ionStepNames (optional)
	if iv := v.LookupPath(cue.ParsePath("ionStepNames")); iv.Exists() {
		names, err := parseStringList(iv)
		if err != nil {
			return nil, err
		}
		cfg.IonStepNames = names
	}

	// Parse radioactiveDecay (optional)
	if rv := v.LookupPath(cue.ParsePath("radioactiveDecay")); rv.Exists() {
		if cfg.RadioactiveDecay.InternalConversion, err = optionalBool(rv, "internalConversion"); err != nil {
			return nil, err
		}
		if cfg.RadioactiveDecay.AtomicRearrangement, err = optionalBool(rv, "atomicRearrangement"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// parseModules extracts the ordered module list. Each element is either a
// bare name string or a struct with name and optional options.
func parseModules(v cue.Value) ([]ir.ModuleSpec, error) {
	mv := v.LookupPath(cue.ParsePath("modules"))
	if !mv.Exists() {
		return nil, nil
	}

	iter, err := mv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var modules []ir.ModuleSpec
	for iter.Next() {
		elem := iter.Value()

		// Try as string first (bare module name)
		if name, err := elem.String(); err == nil {
			modules = append(modules, ir.ModuleSpec{Name: name})
			continue
		}

		nameVal := elem.LookupPath(cue.ParsePath("name"))
		if !nameVal.Exists() {
			return nil, &CompileError{
				Field:   "modules.name",
				Message: "module must be a string or a struct with a name field",
				Pos:     elem.Pos(),
			}
		}
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}

		spec := ir.ModuleSpec{Name: name}
		if ov := elem.LookupPath(cue.ParsePath("options")); ov.Exists() {
			spec.Options, err = parseOptions(ov)
			if err != nil {
				return nil, err
			}
		}
		modules = append(modules, spec)
	}

	return modules, nil
}

// parseOptions flattens a module option struct to strings. Booleans and
// numbers keep their literal text.
func parseOptions(v cue.Value) (map[string]string, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	opts := make(map[string]string)
	for iter.Next() {
		key := iter.Label()
		val := iter.Value()

		switch val.IncompleteKind() {
		case cue.StringKind:
			s, err := val.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			opts[key] = s
		case cue.BoolKind:
			b, err := val.Bool()
			if err != nil {
				return nil, formatCUEError(err)
			}
			opts[key] = fmt.Sprintf("%t", b)
		case cue.IntKind, cue.FloatKind, cue.NumberKind:
			s, err := numberText(val)
			if err != nil {
				return nil, err
			}
			opts[key] = s
		default:
			return nil, &CompileError{
				Field:   "options." + key,
				Message: fmt.Sprintf("option must be a string, bool or number, got %v", val.IncompleteKind()),
				Pos:     val.Pos(),
			}
		}
	}

	return opts, nil
}

var cutFields = []string{"default", "gamma", "electron", "positron", "muon", "neutron"}

func parseCuts(v cue.Value) (ir.CutOverrides, error) {
	var cuts ir.CutOverrides

	cv := v.LookupPath(cue.ParsePath("cuts"))
	if !cv.Exists() {
		return cuts, nil
	}

	targets := map[string]**ir.Length{
		"default":  &cuts.Default,
		"gamma":    &cuts.Gamma,
		"electron": &cuts.Electron,
		"positron": &cuts.Positron,
		"muon":     &cuts.Muon,
		"neutron":  &cuts.Neutron,
	}

	for _, field := range cutFields {
		fv := cv.LookupPath(cue.ParsePath(field))
		if !fv.Exists() {
			continue
		}
		text, err := quantityText(fv)
		if err != nil {
			return cuts, err
		}
		l, err := ir.ParseLength(text)
		if err != nil {
			return cuts, &CompileError{Field: "cuts." + field, Message: err.Error(), Pos: fv.Pos()}
		}
		*targets[field] = &l
	}

	return cuts, nil
}

func parseWindow(v cue.Value) (*ir.EnergyWindow, error) {
	var bounds [2]ir.Energy
	for i, field := range []string{"min", "max"} {
		fv := v.LookupPath(cue.ParsePath(field))
		if !fv.Exists() {
			return nil, &CompileError{
				Field:   "cutEnergyWindow." + field,
				Message: field + " is required",
				Pos:     v.Pos(),
			}
		}
		text, err := quantityText(fv)
		if err != nil {
			return nil, err
		}
		e, err := ir.ParseEnergy(text)
		if err != nil {
			return nil, &CompileError{Field: "cutEnergyWindow." + field, Message: err.Error(), Pos: fv.Pos()}
		}
		bounds[i] = e
	}
	return &ir.EnergyWindow{Min: bounds[0], Max: bounds[1]}, nil
}

func parseStringList(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

func optionalBool(v cue.Value, field string) (*bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return nil, formatCUEError(err)
	}
	return &b, nil
}

// quantityText returns a length or energy as text: strings as written,
// numbers in their exact decimal form.
func quantityText(v cue.Value) (string, error) {
	switch v.IncompleteKind() {
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return "", formatCUEError(err)
		}
		return s, nil
	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		return numberText(v)
	}
	return "", &CompileError{
		Field:   "quantity",
		Message: fmt.Sprintf("expected a number or a string with unit, got %v", v.IncompleteKind()),
		Pos:     v.Pos(),
	}
}

func numberText(v cue.Value) (string, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return "", formatCUEError(err)
	}
	return strings.TrimSpace(string(b)), nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
