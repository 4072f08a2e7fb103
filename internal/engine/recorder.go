package engine

import (
	"strings"

	"github.com/lobis/restG4/internal/ir"
)

// Recorded operation names.
const (
	OpEnergyRange        = "energy_range"
	OpDefineParticles    = "define_particles"
	OpAddTransportation  = "add_transportation"
	OpConstructProcesses = "construct_processes"
	OpCommand            = "command"
	OpStepLimiter        = "step_limiter"
	OpDefaultCut         = "default_cut"
	OpCut                = "cut"
)

// standardParticles are defined by any module unless a catalog says otherwise.
var standardParticles = []string{
	ir.SpeciesGamma,
	ir.SpeciesElectron,
	ir.SpeciesPositron,
	ir.SpeciesMuonMinus,
	ir.SpeciesMuonPlus,
	ir.SpeciesNeutron,
	"proton",
	"GenericIon",
}

// ParticleCatalog returns the particles a module defines.
type ParticleCatalog func(module string) []string

// Recorder is an in-memory Engine. It keeps a particle universe populated by
// module particle construction and records every call in order.
//
// Recorder is not safe for concurrent use; assembly execution is single-threaded.
type Recorder struct {
	clock     SeqSource
	catalog   ParticleCatalog
	particles map[string]bool
	calls     []ir.EngineCall
	failures  map[string]error
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithCatalog overrides which particles each module defines.
func WithCatalog(c ParticleCatalog) RecorderOption {
	return func(r *Recorder) { r.catalog = c }
}

// SeqSource hands out logical sequence numbers. *Clock implements it.
type SeqSource interface {
	Next() int64
}

// WithClock sets the clock used to stamp calls.
func WithClock(c SeqSource) RecorderOption {
	return func(r *Recorder) { r.clock = c }
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		clock:     NewClock(),
		catalog:   func(string) []string { return standardParticles },
		particles: make(map[string]bool),
		failures:  make(map[string]error),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FailOn makes the call (op, target) return err instead of being recorded.
func (r *Recorder) FailOn(op, target string, err error) {
	r.failures[op+"\x00"+target] = err
}

func (r *Recorder) record(op, target, value string) error {
	if err, ok := r.failures[op+"\x00"+target]; ok {
		return err
	}
	r.calls = append(r.calls, ir.EngineCall{Seq: r.clock.Next(), Op: op, Target: target, Value: value})
	return nil
}

// DefineParticles implements physics.Host.
func (r *Recorder) DefineParticles(module string) error {
	if err := r.record(OpDefineParticles, module, ""); err != nil {
		return err
	}
	for _, p := range r.catalog(module) {
		r.particles[p] = true
	}
	return nil
}

// ConstructProcesses implements physics.Host.
func (r *Recorder) ConstructProcesses(module string) error {
	return r.record(OpConstructProcesses, module, "")
}

// SetProductionEnergyRange implements Engine.
func (r *Recorder) SetProductionEnergyRange(w ir.EnergyWindow) error {
	return r.record(OpEnergyRange, w.Min.String(), w.Max.String())
}

// AddTransportation implements Engine.
func (r *Recorder) AddTransportation() error {
	return r.record(OpAddTransportation, "", "")
}

// ApplyCommand implements Engine.
func (r *Recorder) ApplyCommand(command string) error {
	return r.record(OpCommand, command, "")
}

// HasParticle implements Engine.
func (r *Recorder) HasParticle(name string) bool {
	return r.particles[name]
}

// AttachStepLimiter implements Engine.
func (r *Recorder) AttachStepLimiter(m ir.ParticleMatcher, tag string) error {
	target := m.Name
	if m.Kind == ir.MatchIon {
		target = m.String() + "=" + m.Name
	}
	return r.record(OpStepLimiter, target, tag)
}

// SetDefaultCut implements Engine.
func (r *Recorder) SetDefaultCut(l ir.Length) error {
	return r.record(OpDefaultCut, "", l.String())
}

// SetCut implements Engine.
func (r *Recorder) SetCut(species string, l ir.Length) error {
	return r.record(OpCut, species, l.String())
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []ir.EngineCall {
	return append([]ir.EngineCall(nil), r.calls...)
}

// Ops returns the recorded operation names, in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Trace renders the recorded calls one per line.
func (r *Recorder) Trace() string {
	return FormatTrace(r.calls)
}

// FormatTrace renders calls one per line, each line newline-terminated.
func FormatTrace(calls []ir.EngineCall) string {
	var b strings.Builder
	for _, c := range calls {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
