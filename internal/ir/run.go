package ir

// Run statuses recorded in the run ledger.
const (
	RunApplied = "applied"
	RunFailed  = "failed"
)

// Run is one recorded application of a physics setup against an engine.
type Run struct {
	ID              string       `json:"id"`
	Seq             int64        `json:"seq"`
	Status          string       `json:"status"`
	ConfigHash      string       `json:"config_hash"`
	ResolutionHash  string       `json:"resolution_hash"`
	Electromagnetic string       `json:"electromagnetic,omitempty"`
	Hadronic        []string     `json:"hadronic"`
	Diagnostics     []Diagnostic `json:"diagnostics"`
	Trace           []EngineCall `json:"trace"`
	Error           string       `json:"error,omitempty"`
	ResolverVersion string       `json:"resolver_version"`
	IRVersion       string       `json:"ir_version"`
}
