package ir

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Length is a distance in integer nanometres.
type Length int64

// Length units.
const (
	Nanometre  Length = 1
	Micrometre Length = 1000 * Nanometre
	Millimetre Length = 1000 * Micrometre
	Centimetre Length = 10 * Millimetre
	Metre      Length = 1000 * Millimetre
)

// Energy is an energy in integer electronvolts.
type Energy int64

// Energy units.
const (
	ElectronVolt     Energy = 1
	KiloElectronVolt Energy = 1000 * ElectronVolt
	MegaElectronVolt Energy = 1000 * KiloElectronVolt
	GigaElectronVolt Energy = 1000 * MegaElectronVolt
)

var lengthUnits = map[string]int64{
	"nm": int64(Nanometre),
	"um": int64(Micrometre),
	"mm": int64(Millimetre),
	"cm": int64(Centimetre),
	"m":  int64(Metre),
}

var energyUnits = map[string]int64{
	"eV":  int64(ElectronVolt),
	"keV": int64(KiloElectronVolt),
	"MeV": int64(MegaElectronVolt),
	"GeV": int64(GigaElectronVolt),
}

// ParseLength parses a decimal length such as "0.1mm", "10 um" or "2".
// A bare number is read in millimetres.
func ParseLength(s string) (Length, error) {
	v, err := parseQuantity(s, lengthUnits, "mm")
	if err != nil {
		return 0, fmt.Errorf("length %q: %w", s, err)
	}
	return Length(v), nil
}

// ParseEnergy parses a decimal energy such as "1keV", "2.5 MeV" or "10".
// A bare number is read in keV.
func ParseEnergy(s string) (Energy, error) {
	v, err := parseQuantity(s, energyUnits, "keV")
	if err != nil {
		return 0, fmt.Errorf("energy %q: %w", s, err)
	}
	return Energy(v), nil
}

// Millimetres formats the length as a decimal number of millimetres.
func (l Length) Millimetres() string {
	return formatScaled(int64(l), int64(Millimetre))
}

func (l Length) String() string {
	return l.Millimetres() + " mm"
}

// KiloElectronVolts formats the energy as a decimal number of keV.
func (e Energy) KiloElectronVolts() string {
	return formatScaled(int64(e), int64(KiloElectronVolt))
}

func (e Energy) String() string {
	return e.KiloElectronVolts() + " keV"
}

// parseQuantity reads "<decimal>[ ]<unit>" exactly; fractions finer than the
// base unit are rejected rather than rounded.
func parseQuantity(s string, units map[string]int64, defaultUnit string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	end := 0
	for end < len(s) && (s[end] == '-' || s[end] == '+' || s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	number, unit := s[:end], strings.TrimSpace(s[end:])
	if unit == "" {
		unit = defaultUnit
	}
	scale, ok := units[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
	if number == "" {
		return 0, fmt.Errorf("missing number")
	}

	negative := false
	switch number[0] {
	case '-':
		negative = true
		number = number[1:]
	case '+':
		number = number[1:]
	}
	if strings.ContainsAny(number, "+-") {
		return 0, fmt.Errorf("invalid number %q", s[:end])
	}

	whole, frac, _ := strings.Cut(number, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("missing number")
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", number)
	}
	if w > math.MaxInt64/scale {
		return 0, fmt.Errorf("value %q out of range", s[:end])
	}
	value := w * scale

	frac = strings.TrimRight(frac, "0")
	if frac != "" {
		if len(frac) > len(strconv.FormatInt(scale, 10))-1 {
			return 0, fmt.Errorf("precision finer than the base unit")
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", number)
		}
		step := scale
		for i := 0; i < len(frac); i++ {
			step /= 10
		}
		if f*step > math.MaxInt64-value {
			return 0, fmt.Errorf("value %q out of range", s[:end])
		}
		value += f * step
	}

	if negative {
		value = -value
	}
	return value, nil
}

// formatScaled prints v/scale as a minimal decimal string.
func formatScaled(v, scale int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, rem := v/scale, v%scale
	if rem == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	digits := len(strconv.FormatInt(scale, 10)) - 1
	frac := strings.TrimRight(fmt.Sprintf("%0*d", digits, rem), "0")
	return fmt.Sprintf("%s%d.%s", sign, whole, frac)
}
