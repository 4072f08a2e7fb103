package physics

import "github.com/lobis/restG4/internal/ir"

// Host is the engine capability a module uses while it is being constructed.
type Host interface {
	// DefineParticles registers the particle definitions owned by module.
	DefineParticles(module string) error

	// ConstructProcesses registers the physics processes of module.
	ConstructProcesses(module string) error
}

// Module is a named unit of physics behavior. The category is used only for
// selection and validation.
type Module interface {
	Name() string
	Category() ir.Category
	ConstructParticles(h Host) error
	ConstructProcesses(h Host) error
}

// Factory produces a fresh Module value.
type Factory func() Module

// engineModule is a module whose construction is delegated entirely to the
// engine under its canonical name.
type engineModule struct {
	name     string
	category ir.Category
}

func (m *engineModule) Name() string          { return m.name }
func (m *engineModule) Category() ir.Category { return m.category }

func (m *engineModule) ConstructParticles(h Host) error {
	return h.DefineParticles(m.name)
}

func (m *engineModule) ConstructProcesses(h Host) error {
	return h.ConstructProcesses(m.name)
}

// engineFactory returns a Factory for an engine-provided module.
func engineFactory(name string, category ir.Category) Factory {
	return func() Module {
		return &engineModule{name: name, category: category}
	}
}
