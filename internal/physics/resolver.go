package physics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lobis/restG4/internal/ir"
)

// Assembly is the validated module selection. It holds at most one
// electromagnetic module; hadronic modules keep declaration order and
// duplicates. An Assembly is never mutated after Resolve returns it.
type Assembly struct {
	Decay            Module
	RadioactiveDecay Module
	Electromagnetic  Module
	Hadronic         []Module

	// EMOptions is set iff Electromagnetic is set.
	EMOptions *ir.EMOptions

	// RDMOptions is meaningful only when RadioactiveDecay is set.
	RDMOptions ir.RadioactiveDecayOptions

	// Diagnostics records every advisory condition, whatever the verbosity.
	Diagnostics []ir.Diagnostic
}

// ElectromagneticName returns the canonical name of the selected
// electromagnetic module, or "" if none.
func (a *Assembly) ElectromagneticName() string {
	if a.Electromagnetic == nil {
		return ""
	}
	return a.Electromagnetic.Name()
}

// HadronicNames returns the hadronic module names in construction order.
func (a *Assembly) HadronicNames() []string {
	names := make([]string, len(a.Hadronic))
	for i, m := range a.Hadronic {
		names[i] = m.Name()
	}
	return names
}

// Resolver selects and validates the module set of a physics description.
type Resolver struct {
	registry *Registry
	logger   *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger diagnostics are emitted to.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver creates a resolver over the given registry. A nil registry
// means DefaultRegistry.
func NewResolver(registry *Registry, opts ...ResolverOption) *Resolver {
	if registry == nil {
		registry = DefaultRegistry()
	}
	r := &Resolver{registry: registry, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve selects the modules declared in cfg.
//
// Declared names are visited in order. Decay and radioactive decay keep the
// first match; electromagnetic keeps the first match but every match is
// counted; hadronic matches are all appended. Names missing from the
// registry are ignored.
//
// More than one electromagnetic match is fatal and returns a ResolveError
// with code ErrCodeExclusivityViolation. Zero matches is only a warning.
func (r *Resolver) Resolve(cfg *ir.PhysicsConfig) (*Assembly, error) {
	a := &Assembly{}
	d := &diagnostics{verbosity: cfg.Verbosity, logger: r.logger}

	var emMatches []string
	var emSpec ir.ModuleSpec
	var rdmSpecs []ir.ModuleSpec

	for _, spec := range cfg.Modules {
		entry, ok := r.registry.Lookup(spec.Name)
		if !ok {
			continue
		}

		switch entry.Category {
		case ir.CategoryDecay:
			if a.Decay == nil {
				a.Decay = entry.New()
			}
		case ir.CategoryRadioactiveDecay:
			if a.RadioactiveDecay == nil {
				a.RadioactiveDecay = entry.New()
			}
			rdmSpecs = append(rdmSpecs, spec)
		case ir.CategoryElectromagnetic:
			emMatches = append(emMatches, spec.Name)
			if a.Electromagnetic == nil {
				a.Electromagnetic = entry.New()
				emSpec = spec
			}
		case ir.CategoryHadronic:
			a.Hadronic = append(a.Hadronic, entry.New())
		}
	}

	if len(emMatches) > 1 {
		return nil, NewExclusivityError(emMatches)
	}

	if a.Decay == nil {
		d.add(ir.DiagModuleNotEnabled, ir.VerbosityDebug, fmt.Sprintf("%s is not enabled", ModuleDecay))
	}
	if a.RadioactiveDecay == nil {
		d.add(ir.DiagModuleNotEnabled, ir.VerbosityDebug, fmt.Sprintf("%s is not enabled", ModuleRadioactiveDecayPhysics))
	}

	if a.Electromagnetic == nil {
		d.add(ir.DiagNoEMPhysics, ir.VerbosityEssential, "no EM physics enabled")
	} else {
		a.EMOptions = &ir.EMOptions{
			PIXE:         d.boolOption(emSpec, OptionPIXE, false),
			Fluorescence: d.boolOption(emSpec, OptionFluorescence, true),
			Auger:        d.boolOption(emSpec, OptionAuger, true),
		}
	}

	if a.RadioactiveDecay != nil {
		a.RDMOptions = ir.RadioactiveDecayOptions{
			InternalConversion:  d.flag(cfg.RadioactiveDecay.InternalConversion, rdmSpecs, OptionICM),
			AtomicRearrangement: d.flag(cfg.RadioactiveDecay.AtomicRearrangement, rdmSpecs, OptionARM),
		}
	}

	d.add(ir.DiagHadronicCount, ir.VerbosityInfo, fmt.Sprintf("number of hadronic physics modules added: %d", len(a.Hadronic)))

	a.Diagnostics = d.list
	return a, nil
}

// diagnostics records advisory conditions and emits those within the
// configured verbosity.
type diagnostics struct {
	verbosity ir.Verbosity
	logger    *slog.Logger
	list      []ir.Diagnostic
}

func (d *diagnostics) add(code string, level ir.Verbosity, msg string) {
	d.list = append(d.list, ir.Diagnostic{Code: code, Level: level, Message: msg})
	if d.verbosity < level {
		return
	}

	logLevel := slog.LevelInfo
	switch {
	case level <= ir.VerbosityEssential:
		logLevel = slog.LevelWarn
	case level >= ir.VerbosityDebug:
		logLevel = slog.LevelDebug
	}
	d.logger.Log(context.Background(), logLevel, msg, "code", code)
}

// boolOption reads a boolean module option, falling back to def when the
// option is absent or unparseable.
func (d *diagnostics) boolOption(spec ir.ModuleSpec, key string, def bool) bool {
	raw, ok := spec.Option(key)
	if !ok {
		d.add(ir.DiagMissingModuleOption, ir.VerbosityEssential,
			fmt.Sprintf("physics module '%s' option '%s' not defined, using %t", spec.Name, key, def))
		return def
	}
	v, err := ParseBool(raw)
	if err != nil {
		d.add(ir.DiagInvalidModuleOption, ir.VerbosityEssential,
			fmt.Sprintf("physics module '%s' option '%s': %v, using %t", spec.Name, key, err, def))
		return def
	}
	return v
}

// flag resolves an optional radioactive decay flag: the declared value wins,
// then the option of the first radioactive decay declaration that sets it.
// Unset leaves the engine default in place.
func (d *diagnostics) flag(declared *bool, specs []ir.ModuleSpec, key string) *bool {
	if declared != nil {
		v := *declared
		return &v
	}
	var spec ir.ModuleSpec
	var raw string
	found := false
	for _, s := range specs {
		if raw, found = s.Option(key); found {
			spec = s
			break
		}
	}
	if !found {
		d.add(ir.DiagMissingModuleOption, ir.VerbosityEssential,
			fmt.Sprintf("physics module '%s' option '%s' not defined", specs[0].Name, key))
		return nil
	}
	v, err := ParseBool(raw)
	if err != nil {
		d.add(ir.DiagInvalidModuleOption, ir.VerbosityEssential,
			fmt.Sprintf("physics module '%s' option '%s': %v", spec.Name, key, err))
		return nil
	}
	return &v
}
