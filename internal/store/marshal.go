package store

import (
	"encoding/json"
	"fmt"

	"github.com/lobis/restG4/internal/ir"
)

// marshalHadronic converts the hadronic module list to canonical JSON TEXT.
func marshalHadronic(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := ir.MarshalCanonical(names)
	if err != nil {
		return "", fmt.Errorf("marshal hadronic: %w", err)
	}
	return string(data), nil
}

// marshalDiagnostics converts diagnostics to canonical JSON TEXT.
func marshalDiagnostics(diags []ir.Diagnostic) (string, error) {
	items := make([]any, len(diags))
	for i, d := range diags {
		items[i] = map[string]any{
			"code":    d.Code,
			"level":   int(d.Level),
			"message": d.Message,
		}
	}
	data, err := ir.MarshalCanonical(items)
	if err != nil {
		return "", fmt.Errorf("marshal diagnostics: %w", err)
	}
	return string(data), nil
}

func unmarshalHadronic(data string) ([]string, error) {
	names := []string{}
	if data == "" {
		return names, nil
	}
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("unmarshal hadronic: %w", err)
	}
	return names, nil
}

func unmarshalDiagnostics(data string) ([]ir.Diagnostic, error) {
	diags := []ir.Diagnostic{}
	if data == "" {
		return diags, nil
	}
	if err := json.Unmarshal([]byte(data), &diags); err != nil {
		return nil, fmt.Errorf("unmarshal diagnostics: %w", err)
	}
	return diags, nil
}
