package ir

import "fmt"

// Step limiter tags.
const (
	TagElectronStep  = "e-Step"
	TagPositronStep  = "e+Step"
	TagMuonMinusStep = "mu-Step"
	TagMuonPlusStep  = "mu+Step"
	TagIonStep       = "ionStep"
)

// MatcherKind distinguishes named-particle matchers from ion matchers.
type MatcherKind string

const (
	MatchParticle MatcherKind = "particle"
	MatchIon      MatcherKind = "ion"
)

// ParticleMatcher selects the particle a step limiter is attached to.
// For MatchParticle only Name is set; for MatchIon Z and A identify the
// ground state and Name holds its canonical ion name.
type ParticleMatcher struct {
	Kind MatcherKind `json:"kind"`
	Name string      `json:"name"`
	Z    int         `json:"z,omitempty"`
	A    int         `json:"a,omitempty"`
}

// ParticleMatch returns a matcher for a named species.
func ParticleMatch(name string) ParticleMatcher {
	return ParticleMatcher{Kind: MatchParticle, Name: name}
}

// IonMatch returns a matcher for the ground state of ion (z, a).
func IonMatch(z, a int, name string) ParticleMatcher {
	return ParticleMatcher{Kind: MatchIon, Name: name, Z: z, A: a}
}

func (m ParticleMatcher) String() string {
	if m.Kind == MatchIon {
		return fmt.Sprintf("ion(%d,%d)", m.Z, m.A)
	}
	return m.Name
}

// LimiterRule attaches a named step limiter to the particles a matcher selects.
type LimiterRule struct {
	Matcher ParticleMatcher `json:"matcher"`
	Tag     string          `json:"tag"`
}

// StepLimiterPlan is the ordered list of step limiter rules: fixed-name
// rules first, then ion rules by increasing Z, then increasing A.
type StepLimiterPlan struct {
	Rules []LimiterRule `json:"rules"`
}

// IonRules returns the subset of rules that target ions.
func (p StepLimiterPlan) IonRules() []LimiterRule {
	var out []LimiterRule
	for _, r := range p.Rules {
		if r.Matcher.Kind == MatchIon {
			out = append(out, r)
		}
	}
	return out
}

// Contains reports whether the plan holds the given rule.
func (p StepLimiterPlan) Contains(rule LimiterRule) bool {
	for _, r := range p.Rules {
		if r == rule {
			return true
		}
	}
	return false
}

func (r LimiterRule) String() string {
	return r.Matcher.String() + " " + r.Tag
}
