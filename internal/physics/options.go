package physics

import (
	"fmt"
	"strings"
)

// Module option keys.
const (
	OptionPIXE         = "pixe"
	OptionFluorescence = "fluo"
	OptionAuger        = "auger"
	OptionICM          = "ICM"
	OptionARM          = "ARM"
)

// ParseBool parses a module option value. It accepts true/false, 1/0,
// yes/no and on/off in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
