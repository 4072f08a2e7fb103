package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lobis/restG4/internal/ir"
	"github.com/lobis/restG4/internal/physics"
)

// Engine UI commands issued by the executor.
const (
	cmdEMPixe        = "/process/em/pixe"
	cmdEMFluo        = "/process/em/fluo"
	cmdEMAuger       = "/process/em/auger"
	cmdRDMThreshold  = "/process/had/rdm/thresholdForVeryLongDecayTime"
	cmdRDMApplyICM   = "/process/had/rdm/applyICM"
	cmdRDMApplyARM   = "/process/had/rdm/applyARM"
	rdmTimeThreshold = "1 ns"
)

// Executor applies resolved setups to an engine.
type Executor struct {
	logger *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the executor logger.
func WithLogger(l *slog.Logger) ExecutorOption {
	return func(x *Executor) { x.logger = l }
}

// NewExecutor creates an executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	x := &Executor{logger: slog.Default()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ApplySetup applies every artifact of a physics.Setup.
func (x *Executor) ApplySetup(ctx context.Context, eng Engine, s *physics.Setup) error {
	return x.Apply(ctx, eng, s.Assembly, s.Cuts, s.Limiters)
}

// Apply drives the engine through both construction phases and then applies
// the step limiter plan and the cut table. The first engine error aborts
// the run and is returned as an ApplyError.
func (x *Executor) Apply(ctx context.Context, eng Engine, a *physics.Assembly, cuts ir.CutTable, plan ir.StepLimiterPlan) error {
	if err := eng.SetProductionEnergyRange(cuts.Window); err != nil {
		return &ApplyError{Phase: PhaseEnergyRange, Target: cuts.Window.String(), Err: err}
	}

	if err := x.constructParticles(eng, a); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	if err := x.constructProcesses(eng, a); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	if err := x.attachLimiters(eng, plan); err != nil {
		return err
	}

	return x.setCuts(eng, cuts)
}

// particleOrder is the phase 1 order: Decay, Electromagnetic,
// RadioactiveDecay, then Hadronic.
func particleOrder(a *physics.Assembly) []physics.Module {
	var mods []physics.Module
	for _, m := range []physics.Module{a.Decay, a.Electromagnetic, a.RadioactiveDecay} {
		if m != nil {
			mods = append(mods, m)
		}
	}
	return append(mods, a.Hadronic...)
}

func (x *Executor) constructParticles(eng Engine, a *physics.Assembly) error {
	for _, m := range particleOrder(a) {
		if err := m.ConstructParticles(eng); err != nil {
			return &ApplyError{Phase: PhaseParticles, Target: m.Name(), Err: err}
		}
	}
	return nil
}

func (x *Executor) constructProcesses(eng Engine, a *physics.Assembly) error {
	if err := eng.AddTransportation(); err != nil {
		return &ApplyError{Phase: PhaseProcesses, Target: "transportation", Err: err}
	}

	if em := a.Electromagnetic; em != nil {
		if err := em.ConstructProcesses(eng); err != nil {
			return &ApplyError{Phase: PhaseProcesses, Target: em.Name(), Err: err}
		}
		opts := ir.EMOptions{Fluorescence: true, Auger: true}
		if a.EMOptions != nil {
			opts = *a.EMOptions
		}
		for _, c := range []struct {
			cmd string
			on  bool
		}{
			{cmdEMPixe, opts.PIXE},
			{cmdEMFluo, opts.Fluorescence},
			{cmdEMAuger, opts.Auger},
		} {
			x.logger.Info("setting EM option", "command", c.cmd, "value", c.on, "module", em.Name())
			if err := x.command(eng, fmt.Sprintf("%s %t", c.cmd, c.on)); err != nil {
				return err
			}
		}
	}

	if m := a.Decay; m != nil {
		if err := m.ConstructProcesses(eng); err != nil {
			return &ApplyError{Phase: PhaseProcesses, Target: m.Name(), Err: err}
		}
	}

	if m := a.RadioactiveDecay; m != nil {
		if err := m.ConstructProcesses(eng); err != nil {
			return &ApplyError{Phase: PhaseProcesses, Target: m.Name(), Err: err}
		}
		if err := x.command(eng, cmdRDMThreshold+" "+rdmTimeThreshold); err != nil {
			return err
		}
		if v := a.RDMOptions.InternalConversion; v != nil {
			if err := x.command(eng, fmt.Sprintf("%s %t", cmdRDMApplyICM, *v)); err != nil {
				return err
			}
		}
		if v := a.RDMOptions.AtomicRearrangement; v != nil {
			if err := x.command(eng, fmt.Sprintf("%s %t", cmdRDMApplyARM, *v)); err != nil {
				return err
			}
		}
	}

	for _, m := range a.Hadronic {
		if err := m.ConstructProcesses(eng); err != nil {
			return &ApplyError{Phase: PhaseProcesses, Target: m.Name(), Err: err}
		}
	}
	x.logger.Debug("processes constructed", "hadronic", len(a.Hadronic))

	return nil
}

func (x *Executor) command(eng Engine, cmd string) error {
	if err := eng.ApplyCommand(cmd); err != nil {
		return &ApplyError{Phase: PhaseProcesses, Target: cmd, Err: err}
	}
	return nil
}

// attachLimiters applies the plan in order. Named particles absent from the
// engine are skipped; ions are created by the engine on demand.
func (x *Executor) attachLimiters(eng Engine, plan ir.StepLimiterPlan) error {
	for _, r := range plan.Rules {
		if r.Matcher.Kind == ir.MatchParticle && !eng.HasParticle(r.Matcher.Name) {
			x.logger.Debug("particle not defined, step limiter skipped", "particle", r.Matcher.Name, "tag", r.Tag)
			continue
		}
		if r.Matcher.Kind == ir.MatchIon {
			x.logger.Info("found ion", "name", r.Matcher.Name, "z", r.Matcher.Z, "a", r.Matcher.A)
		}
		if err := eng.AttachStepLimiter(r.Matcher, r.Tag); err != nil {
			return &ApplyError{Phase: PhaseLimiters, Target: r.Matcher.String(), Err: err}
		}
	}
	return nil
}

func (x *Executor) setCuts(eng Engine, cuts ir.CutTable) error {
	if err := eng.SetDefaultCut(cuts.Default); err != nil {
		return &ApplyError{Phase: PhaseCuts, Target: "default", Err: err}
	}
	for _, sc := range cuts.SpeciesCuts() {
		if err := eng.SetCut(sc.Species, sc.Cut); err != nil {
			return &ApplyError{Phase: PhaseCuts, Target: sc.Species, Err: err}
		}
	}
	return nil
}
