package ir

import (
	"fmt"
	"strings"
)

// Resolution is the data-only snapshot of a resolved physics setup: the
// selected module names, their resolved options, the cut table and the step
// limiter plan. It is what gets hashed, printed and recorded.
type Resolution struct {
	Decay            string                  `json:"decay,omitempty"`
	RadioactiveDecay string                  `json:"radioactive_decay,omitempty"`
	Electromagnetic  string                  `json:"electromagnetic,omitempty"`
	Hadronic         []string                `json:"hadronic"`
	EMOptions        *EMOptions              `json:"em_options,omitempty"`
	RDMOptions       RadioactiveDecayOptions `json:"rdm_options"`
	Cuts             CutTable                `json:"cuts"`
	Limiters         StepLimiterPlan         `json:"limiters"`
	Diagnostics      []Diagnostic            `json:"diagnostics,omitempty"`
}

// EngineCall is one call made against the engine during assembly execution,
// stamped with a logical sequence number.
type EngineCall struct {
	Seq    int64  `json:"seq"`
	Op     string `json:"op"`
	Target string `json:"target,omitempty"`
	Value  string `json:"value,omitempty"`
}

func (c EngineCall) String() string {
	parts := []string{fmt.Sprintf("%03d", c.Seq), c.Op}
	if c.Target != "" {
		parts = append(parts, c.Target)
	}
	if c.Value != "" {
		parts = append(parts, c.Value)
	}
	return strings.Join(parts, " ")
}
