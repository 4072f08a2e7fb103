package physics

import "github.com/lobis/restG4/internal/ir"

// fixedLimiterRules are attached unconditionally, subject only to the
// particle existing in the engine when the plan is applied.
var fixedLimiterRules = []ir.LimiterRule{
	{Matcher: ir.ParticleMatch(ir.SpeciesElectron), Tag: ir.TagElectronStep},
	{Matcher: ir.ParticleMatch(ir.SpeciesPositron), Tag: ir.TagPositronStep},
	{Matcher: ir.ParticleMatch(ir.SpeciesMuonMinus), Tag: ir.TagMuonMinusStep},
	{Matcher: ir.ParticleMatch(ir.SpeciesMuonPlus), Tag: ir.TagMuonPlusStep},
}

// Planner builds step limiter plans.
type Planner struct {
	namer IonNamer
}

// NewPlanner creates a planner. A nil namer means GroundStateNamer.
func NewPlanner(namer IonNamer) *Planner {
	if namer == nil {
		namer = GroundStateNamer{}
	}
	return &Planner{namer: namer}
}

// Plan returns the fixed-name rules followed by one ionStep rule for every
// (Z, A) in the ion sweep whose canonical name is listed in
// cfg.IonStepNames. Names outside the sweep never match. The plan encodes
// intent only; particle existence is checked when it is applied.
func (p *Planner) Plan(cfg *ir.PhysicsConfig) ir.StepLimiterPlan {
	rules := append([]ir.LimiterRule(nil), fixedLimiterRules...)

	wanted := make(map[string]bool, len(cfg.IonStepNames))
	for _, name := range cfg.IonStepNames {
		wanted[name] = true
	}

	if len(wanted) > 0 {
		for z := IonSweepMinZ; z <= IonSweepMaxZ; z++ {
			for a := 2 * z; a <= 3*z; a++ {
				name, ok := p.namer.IonName(z, a)
				if !ok || !wanted[name] {
					continue
				}
				rules = append(rules, ir.LimiterRule{Matcher: ir.IonMatch(z, a, name), Tag: ir.TagIonStep})
			}
		}
	}

	return ir.StepLimiterPlan{Rules: rules}
}
