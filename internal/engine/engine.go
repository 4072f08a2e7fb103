package engine

import (
	"github.com/lobis/restG4/internal/ir"
	"github.com/lobis/restG4/internal/physics"
)

// Engine is the capability surface of the simulation engine consumed by the
// executor. Implementations own particle definitions and process execution.
type Engine interface {
	physics.Host

	// SetProductionEnergyRange bounds the energies of the cut table.
	SetProductionEnergyRange(w ir.EnergyWindow) error

	// AddTransportation installs the transportation process on every particle.
	AddTransportation() error

	// ApplyCommand applies an engine UI command such as "/process/em/fluo true".
	ApplyCommand(command string) error

	// HasParticle reports whether the named particle is defined.
	HasParticle(name string) bool

	// AttachStepLimiter attaches a named step limiter process to the particle
	// the matcher selects. Ion matchers address the ground state of (Z, A).
	AttachStepLimiter(m ir.ParticleMatcher, tag string) error

	// SetDefaultCut sets the production cut applied to every species.
	SetDefaultCut(l ir.Length) error

	// SetCut sets the production cut of one species.
	SetCut(species string, l ir.Length) error
}
