package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobis/restG4/internal/ir"
)

func TestRecorderParticleUniverse(t *testing.T) {
	rec := NewRecorder()
	assert.False(t, rec.HasParticle(ir.SpeciesElectron), "nothing defined before particle construction")

	require.NoError(t, rec.DefineParticles("G4EmLivermorePhysics"))
	assert.True(t, rec.HasParticle(ir.SpeciesElectron))
	assert.True(t, rec.HasParticle("GenericIon"))
	assert.False(t, rec.HasParticle("pi+"))
}

func TestRecorderCatalog(t *testing.T) {
	rec := NewRecorder(WithCatalog(func(module string) []string {
		if module == "G4DecayPhysics" {
			return []string{"pi+"}
		}
		return nil
	}))

	require.NoError(t, rec.DefineParticles("G4EmLivermorePhysics"))
	assert.False(t, rec.HasParticle(ir.SpeciesElectron))

	require.NoError(t, rec.DefineParticles("G4DecayPhysics"))
	assert.True(t, rec.HasParticle("pi+"))
}

func TestRecorderStampsCallsInOrder(t *testing.T) {
	rec := NewRecorder(WithClock(NewClockAt(10)))

	require.NoError(t, rec.SetProductionEnergyRange(ir.DefaultEnergyWindow))
	require.NoError(t, rec.AddTransportation())
	require.NoError(t, rec.AttachStepLimiter(ir.IonMatch(6, 14, "C14"), "ionStep"))
	require.NoError(t, rec.SetCut(ir.SpeciesGamma, ir.Millimetre))

	calls := rec.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, int64(11), calls[0].Seq)
	assert.Equal(t, int64(14), calls[3].Seq)
	assert.Equal(t, []string{OpEnergyRange, OpAddTransportation, OpStepLimiter, OpCut}, rec.Ops())
	assert.Equal(t, "ion(6,14)=C14", calls[2].Target)
	assert.Equal(t, "013 step_limiter ion(6,14)=C14 ionStep\n", FormatTrace(calls[2:3]))
}

func TestRecorderFailOn(t *testing.T) {
	rec := NewRecorder()
	boom := errors.New("boom")
	rec.FailOn(OpCut, ir.SpeciesNeutron, boom)

	require.NoError(t, rec.SetCut(ir.SpeciesGamma, ir.Millimetre))
	assert.ErrorIs(t, rec.SetCut(ir.SpeciesNeutron, ir.Millimetre), boom)
	assert.Len(t, rec.Calls(), 1, "failed calls are not recorded")
}

func TestRecorderCallsIsCopy(t *testing.T) {
	rec := NewRecorder()
	require.NoError(t, rec.AddTransportation())

	calls := rec.Calls()
	calls[0].Op = "tampered"
	assert.Equal(t, OpAddTransportation, rec.Calls()[0].Op)
}
