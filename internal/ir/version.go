package ir

// Version constants for IR schema and resolver.
const (
	// IRVersion is the IR schema version.
	IRVersion = "1"

	// ResolverVersion is the physics resolver version recorded with every run.
	ResolverVersion = "0.1.0"
)
