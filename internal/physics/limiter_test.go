package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobis/restG4/internal/ir"
)

func TestPlanFixedRulesUnconditional(t *testing.T) {
	plan := NewPlanner(nil).Plan(&ir.PhysicsConfig{})

	assert.Equal(t, []ir.LimiterRule{
		{Matcher: ir.ParticleMatch("e-"), Tag: "e-Step"},
		{Matcher: ir.ParticleMatch("e+"), Tag: "e+Step"},
		{Matcher: ir.ParticleMatch("mu-"), Tag: "mu-Step"},
		{Matcher: ir.ParticleMatch("mu+"), Tag: "mu+Step"},
	}, plan.Rules)
	assert.Empty(t, plan.IonRules())
}

func TestPlanIonInsideWindow(t *testing.T) {
	plan := NewPlanner(nil).Plan(&ir.PhysicsConfig{IonStepNames: []string{"C14"}})

	assert.True(t, plan.Contains(ir.LimiterRule{Matcher: ir.IonMatch(6, 14, "C14"), Tag: ir.TagIonStep}))
	assert.Len(t, plan.IonRules(), 1)
}

func TestPlanIonOutsideWindowIgnored(t *testing.T) {
	// A in [12, 18] for carbon; C20 is outside the sweep.
	plan := NewPlanner(nil).Plan(&ir.PhysicsConfig{IonStepNames: []string{"C20", "U238", "Zr121", "unobtainium"}})

	assert.Empty(t, plan.IonRules())
	assert.Len(t, plan.Rules, 4)
}

func TestPlanIonOrderingAndBounds(t *testing.T) {
	cfg := &ir.PhysicsConfig{IonStepNames: []string{"Zr120", "Zr80", "He4", "H2", "C12", "C12"}}

	plan := NewPlanner(nil).Plan(cfg)

	assert.Equal(t, []ir.LimiterRule{
		{Matcher: ir.IonMatch(1, 2, "H2"), Tag: "ionStep"},
		{Matcher: ir.IonMatch(2, 4, "He4"), Tag: "ionStep"},
		{Matcher: ir.IonMatch(6, 12, "C12"), Tag: "ionStep"},
		{Matcher: ir.IonMatch(40, 80, "Zr80"), Tag: "ionStep"},
		{Matcher: ir.IonMatch(40, 120, "Zr120"), Tag: "ionStep"},
	}, plan.IonRules())

	// Fixed-name rules always come first.
	for i := 0; i < 4; i++ {
		assert.Equal(t, ir.MatchParticle, plan.Rules[i].Matcher.Kind)
	}
}

type suffixNamer struct{}

func (suffixNamer) IonName(z, a int) (string, bool) {
	if z == 2 && a == 4 {
		return "alpha", true
	}
	return "", false
}

func TestPlanUsesInjectedNamer(t *testing.T) {
	plan := NewPlanner(suffixNamer{}).Plan(&ir.PhysicsConfig{IonStepNames: []string{"alpha", "He4"}})

	require.Len(t, plan.IonRules(), 1)
	assert.Equal(t, ir.IonMatch(2, 4, "alpha"), plan.IonRules()[0].Matcher)
}

func TestIonName(t *testing.T) {
	name, ok := IonName(6, 14)
	require.True(t, ok)
	assert.Equal(t, "C14", name)

	name, ok = IonName(40, 91)
	require.True(t, ok)
	assert.Equal(t, "Zr91", name)

	_, ok = IonName(0, 1)
	assert.False(t, ok)
	_, ok = IonName(6, 3)
	assert.False(t, ok)
}

func TestIonSweepIsClosed(t *testing.T) {
	var all []string
	for z := IonSweepMinZ; z <= IonSweepMaxZ; z++ {
		for a := 2 * z; a <= 3*z; a++ {
			name, _ := IonName(z, a)
			all = append(all, name)
		}
	}

	plan := NewPlanner(nil).Plan(&ir.PhysicsConfig{IonStepNames: all})

	// sum over Z=1..40 of (Z+1) = 820 + 40
	assert.Len(t, plan.IonRules(), 860)
}
