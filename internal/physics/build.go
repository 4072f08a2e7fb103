package physics

import (
	"fmt"
	"log/slog"

	"github.com/lobis/restG4/internal/ir"
)

// Setup bundles the three resolved artifacts handed to the executor.
type Setup struct {
	Assembly *Assembly
	Cuts     ir.CutTable
	Limiters ir.StepLimiterPlan
}

// BuildOptions configures Build.
type BuildOptions struct {
	Registry *Registry
	Namer    IonNamer
	Logger   *slog.Logger
}

// Build resolves the module set, assigns cuts and plans step limiters.
// It is all-or-nothing: on error the returned Setup is nil.
func Build(cfg *ir.PhysicsConfig, opts BuildOptions) (*Setup, error) {
	var resolverOpts []ResolverOption
	if opts.Logger != nil {
		resolverOpts = append(resolverOpts, WithLogger(opts.Logger))
	}

	assembly, err := NewResolver(opts.Registry, resolverOpts...).Resolve(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve modules: %w", err)
	}

	cuts, err := AssignCuts(cfg)
	if err != nil {
		return nil, fmt.Errorf("assign cuts: %w", err)
	}

	return &Setup{
		Assembly: assembly,
		Cuts:     cuts,
		Limiters: NewPlanner(opts.Namer).Plan(cfg),
	}, nil
}

// Resolution returns the data-only snapshot of the setup.
func (s *Setup) Resolution() *ir.Resolution {
	a := s.Assembly
	res := &ir.Resolution{
		Electromagnetic: a.ElectromagneticName(),
		Hadronic:        a.HadronicNames(),
		Cuts:            s.Cuts,
		Limiters:        s.Limiters,
		Diagnostics:     append([]ir.Diagnostic(nil), a.Diagnostics...),
	}
	if a.Decay != nil {
		res.Decay = a.Decay.Name()
	}
	if a.RadioactiveDecay != nil {
		res.RadioactiveDecay = a.RadioactiveDecay.Name()
		res.RDMOptions = a.RDMOptions
	}
	if a.EMOptions != nil {
		opts := *a.EMOptions
		res.EMOptions = &opts
	}
	return res
}
