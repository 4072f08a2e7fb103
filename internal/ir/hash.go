package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainConfig     = "restg4/config/v1"
	DomainResolution = "restg4/resolution/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ConfigHash computes the content hash of a parsed physics description.
// Two descriptions with the same modules (in the same order), options, cuts,
// window, ion names and decay flags hash identically.
func ConfigHash(cfg *PhysicsConfig) (string, error) {
	canonical, err := MarshalCanonical(configMap(cfg))
	if err != nil {
		return "", fmt.Errorf("ConfigHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainConfig, canonical), nil
}

// ResolutionHash computes the content hash of a resolved setup. Diagnostics
// are excluded: they describe how the setup was reached, not what it is.
func ResolutionHash(res *Resolution) (string, error) {
	canonical, err := MarshalCanonical(resolutionMap(res))
	if err != nil {
		return "", fmt.Errorf("ResolutionHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainResolution, canonical), nil
}

// MustResolutionHash is like ResolutionHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustResolutionHash(res *Resolution) string {
	h, err := ResolutionHash(res)
	if err != nil {
		panic(err)
	}
	return h
}

func configMap(cfg *PhysicsConfig) map[string]any {
	modules := make([]any, len(cfg.Modules))
	for i, m := range cfg.Modules {
		opts := map[string]string{}
		for k, v := range m.Options {
			opts[k] = v
		}
		modules[i] = map[string]any{"name": m.Name, "options": opts}
	}

	cuts := map[string]any{}
	for key, l := range map[string]*Length{
		"default":  cfg.Cuts.Default,
		"gamma":    cfg.Cuts.Gamma,
		"electron": cfg.Cuts.Electron,
		"positron": cfg.Cuts.Positron,
		"muon":     cfg.Cuts.Muon,
		"neutron":  cfg.Cuts.Neutron,
	} {
		if l != nil {
			cuts[key] = *l
		}
	}

	obj := map[string]any{
		"verbosity":         int(cfg.Verbosity),
		"modules":           modules,
		"cuts":              cuts,
		"ion_step_names":    append([]string{}, cfg.IonStepNames...),
		"radioactive_decay": rdmMap(cfg.RadioactiveDecay),
	}
	if cfg.CutEnergyWindow != nil {
		obj["cut_energy_window"] = windowMap(*cfg.CutEnergyWindow)
	}
	return obj
}

func resolutionMap(res *Resolution) map[string]any {
	obj := map[string]any{
		"decay":             res.Decay,
		"radioactive_decay": res.RadioactiveDecay,
		"electromagnetic":   res.Electromagnetic,
		"hadronic":          append([]string{}, res.Hadronic...),
		"rdm_options":       rdmMap(res.RDMOptions),
		"cuts": map[string]any{
			"default":       res.Cuts.Default,
			"gamma":         res.Cuts.Gamma,
			"electron":      res.Cuts.Electron,
			"positron":      res.Cuts.Positron,
			"muon":          res.Cuts.Muon,
			"neutron":       res.Cuts.Neutron,
			"energy_window": windowMap(res.Cuts.Window),
		},
	}
	if res.EMOptions != nil {
		obj["em_options"] = map[string]any{
			"fluorescence": res.EMOptions.Fluorescence,
			"auger":        res.EMOptions.Auger,
			"pixe":         res.EMOptions.PIXE,
		}
	}

	rules := make([]any, len(res.Limiters.Rules))
	for i, r := range res.Limiters.Rules {
		rules[i] = map[string]any{
			"kind": string(r.Matcher.Kind),
			"name": r.Matcher.Name,
			"z":    r.Matcher.Z,
			"a":    r.Matcher.A,
			"tag":  r.Tag,
		}
	}
	obj["limiters"] = rules
	return obj
}

func windowMap(w EnergyWindow) map[string]any {
	return map[string]any{"min": w.Min, "max": w.Max}
}

func rdmMap(o RadioactiveDecayOptions) map[string]any {
	m := map[string]any{}
	if o.InternalConversion != nil {
		m["internal_conversion"] = *o.InternalConversion
	}
	if o.AtomicRearrangement != nil {
		m["atomic_rearrangement"] = *o.AtomicRearrangement
	}
	return m
}
