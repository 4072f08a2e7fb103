package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobis/restG4/internal/ir"
)

func compileString(t *testing.T, src string) (*ir.PhysicsConfig, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileRoot(v)
}

func TestCompilePhysicsBasic(t *testing.T) {
	cfg, err := compileString(t, `
		physics: {
			verboseLevel: "info"
			modules: [
				"G4DecayPhysics",
				{name: "G4EmLivermorePhysics", options: {pixe: true, fluo: "false", auger: 1}},
				{name: "G4HadronPhysicsQGSP_BIC_HP"},
			]
		}
	`)
	require.NoError(t, err)

	assert.Equal(t, ir.VerbosityInfo, cfg.Verbosity)
	require.Len(t, cfg.Modules, 3)
	assert.Equal(t, "G4DecayPhysics", cfg.Modules[0].Name)
	assert.Nil(t, cfg.Modules[0].Options)
	assert.Equal(t, "G4EmLivermorePhysics", cfg.Modules[1].Name)
	assert.Equal(t, map[string]string{"pixe": "true", "fluo": "false", "auger": "1"}, cfg.Modules[1].Options)
	assert.Equal(t, "G4HadronPhysicsQGSP_BIC_HP", cfg.Modules[2].Name)
}

func TestCompilePhysicsDefaults(t *testing.T) {
	cfg, err := compileString(t, `physics: {}`)
	require.NoError(t, err)

	assert.Equal(t, ir.VerbosityEssential, cfg.Verbosity)
	assert.Empty(t, cfg.Modules)
	assert.Nil(t, cfg.Cuts.Default)
	assert.Nil(t, cfg.CutEnergyWindow)
	assert.Nil(t, cfg.RadioactiveDecay.InternalConversion)
	assert.Equal(t, ir.DefaultEnergyWindow, cfg.EnergyWindowOrDefault())
}

func TestCompilePhysicsCutsUnits(t *testing.T) {
	cfg, err := compileString(t, `
		physics: cuts: {
			default:  0.5
			gamma:    "10 um"
			electron: "1 cm"
			neutron:  2
		}
	`)
	require.NoError(t, err)

	require.NotNil(t, cfg.Cuts.Default)
	assert.Equal(t, 500*ir.Micrometre, *cfg.Cuts.Default)
	assert.Equal(t, 10*ir.Micrometre, *cfg.Cuts.Gamma)
	assert.Equal(t, 1*ir.Centimetre, *cfg.Cuts.Electron)
	assert.Equal(t, 2*ir.Millimetre, *cfg.Cuts.Neutron)
	assert.Nil(t, cfg.Cuts.Positron)
	assert.Nil(t, cfg.Cuts.Muon)
}

func TestCompilePhysicsEnergyWindow(t *testing.T) {
	cfg, err := compileString(t, `
		physics: cutEnergyWindow: {min: 250, max: "100 MeV"}
	`)
	require.NoError(t, err)

	require.NotNil(t, cfg.CutEnergyWindow)
	assert.Equal(t, 250*ir.KiloElectronVolt, cfg.CutEnergyWindow.Min)
	assert.Equal(t, 100*ir.MegaElectronVolt, cfg.CutEnergyWindow.Max)
}

func TestCompilePhysicsEnergyWindowMissingBound(t *testing.T) {
	_, err := compileString(t, `physics: cutEnergyWindow: {min: 1}`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "cutEnergyWindow.max", ce.Field)
}

func TestCompilePhysicsRadioactiveDecayAndIons(t *testing.T) {
	cfg, err := compileString(t, `
		physics: {
			ionStepNames: ["C14", "U238"]
			radioactiveDecay: {internalConversion: true}
		}
	`)
	require.NoError(t, err)

	assert.Equal(t, []string{"C14", "U238"}, cfg.IonStepNames)
	require.NotNil(t, cfg.RadioactiveDecay.InternalConversion)
	assert.True(t, *cfg.RadioactiveDecay.InternalConversion)
	assert.Nil(t, cfg.RadioactiveDecay.AtomicRearrangement)
}

func TestCompilePhysicsUnknownVerbosity(t *testing.T) {
	_, err := compileString(t, `physics: verboseLevel: "loud"`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "verboseLevel", ce.Field)
	assert.Contains(t, ce.Message, "loud")
}

func TestCompilePhysicsBadUnit(t *testing.T) {
	_, err := compileString(t, `physics: cuts: default: "3 furlong"`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "cuts.default", ce.Field)
	assert.Contains(t, ce.Message, "unknown unit")
}

func TestCompilePhysicsModuleWithoutName(t *testing.T) {
	_, err := compileString(t, `physics: modules: [{options: {pixe: true}}]`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "modules.name", ce.Field)
}

func TestCompilePhysicsInvalidOptionKind(t *testing.T) {
	_, err := compileString(t, `physics: modules: [{name: "G4EmLivermorePhysics", options: {pixe: [1, 2]}}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "options.pixe")
}

func TestCompileRootMissingPhysics(t *testing.T) {
	_, err := compileString(t, `other: 1`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, PhysicsPath, ce.Field)
}

func TestCompilePhysicsCUEError(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`physics: modules: 1 & 2`)

	_, err := CompilePhysics(v.LookupPath(cue.ParsePath("physics")))
	require.Error(t, err)
}

func TestCompileErrorWithoutPosition(t *testing.T) {
	err := &CompileError{Field: "cuts.gamma", Message: "bad"}
	assert.Equal(t, "cuts.gamma: bad", err.Error())
}
