package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lobis/restG4/internal/ir"
)

// checkExpectations compares the outcome against scenario.Expect and adds
// one error per mismatch.
func checkExpectations(scenario *Scenario, result *Result) {
	exp := scenario.Expect

	if exp.Error != "" || result.ErrorCode != "" {
		if exp.Error != result.ErrorCode {
			result.AddError(fmt.Sprintf("error: expected %s, got %s", orNone(exp.Error), orNone(result.ErrorCode)))
		}
		if result.Resolution == nil {
			return
		}
	}

	res := result.Resolution
	if exp.Electromagnetic != nil && *exp.Electromagnetic != res.Electromagnetic {
		result.AddError(fmt.Sprintf("electromagnetic: expected %s, got %s",
			orNone(*exp.Electromagnetic), orNone(res.Electromagnetic)))
	}

	if exp.Hadronic != nil && !slices.Equal(*exp.Hadronic, res.Hadronic) {
		result.AddError(fmt.Sprintf("hadronic: expected %v, got %v", *exp.Hadronic, res.Hadronic))
	}

	if len(exp.EMOptions) > 0 {
		checkEMOptions(exp.EMOptions, res.EMOptions, result)
	}

	for species, want := range exp.Cuts {
		checkCut(species, want, res.Cuts, result)
	}

	for _, want := range exp.Limiters {
		if !planHas(res.Limiters, want) {
			result.AddError(fmt.Sprintf("limiters: %q not in plan", want))
		}
	}
	if exp.LimiterCount != nil && *exp.LimiterCount != len(res.Limiters.Rules) {
		result.AddError(fmt.Sprintf("limiter_count: expected %d, got %d", *exp.LimiterCount, len(res.Limiters.Rules)))
	}

	for _, code := range exp.Diagnostics {
		if !hasDiagnostic(res.Diagnostics, code) {
			result.AddError(fmt.Sprintf("diagnostics: %s not recorded", code))
		}
	}
}

func checkEMOptions(want map[string]bool, got *ir.EMOptions, result *Result) {
	if got == nil {
		result.AddError("em_options: no electromagnetic module resolved")
		return
	}
	actual := map[string]bool{
		"fluorescence": got.Fluorescence,
		"auger":        got.Auger,
		"pixe":         got.PIXE,
	}
	for key, v := range want {
		if actual[key] != v {
			result.AddError(fmt.Sprintf("em_options.%s: expected %t, got %t", key, v, actual[key]))
		}
	}
}

func checkCut(species, want string, cuts ir.CutTable, result *Result) {
	wantLen, err := ir.ParseLength(want)
	if err != nil {
		result.AddError(fmt.Sprintf("cuts.%s: bad expected value %q: %v", species, want, err))
		return
	}

	var got ir.Length
	if species == "default" {
		got = cuts.Default
	} else {
		found := false
		for _, sc := range cuts.SpeciesCuts() {
			if sc.Species == species {
				got, found = sc.Cut, true
				break
			}
		}
		if !found {
			result.AddError(fmt.Sprintf("cuts.%s: unknown species", species))
			return
		}
	}

	if got != wantLen {
		result.AddError(fmt.Sprintf("cuts.%s: expected %s, got %s", species, wantLen, got))
	}
}

func planHas(plan ir.StepLimiterPlan, rule string) bool {
	rule = strings.Join(strings.Fields(rule), " ")
	for _, r := range plan.Rules {
		if r.String() == rule {
			return true
		}
	}
	return false
}

func hasDiagnostic(diags []ir.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
