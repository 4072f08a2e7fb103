package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"0.1mm", 100 * Micrometre},
		{"0.1 mm", 100 * Micrometre},
		{"1", Millimetre},
		{"2.5", 2500 * Micrometre},
		{"10um", 10 * Micrometre},
		{"1 cm", Centimetre},
		{"1m", Metre},
		{"7nm", 7 * Nanometre},
		{".5mm", 500 * Micrometre},
		{"0.000001", Nanometre},
		{"-1mm", -Millimetre},
		{"1.000", Millimetre},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLengthErrors(t *testing.T) {
	for _, in := range []string{"", "mm", "1 furlong", "0.0000001mm", "1.2.3", "abc", "--5mm", "+-5mm", "-+5", "9999999999999999 m", "9223372036854775807 mm"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLength(in)
			assert.Error(t, err)
		})
	}
}

func TestParseEnergy(t *testing.T) {
	tests := []struct {
		in   string
		want Energy
	}{
		{"1keV", KiloElectronVolt},
		{"10", 10 * KiloElectronVolt},
		{"990 eV", 990 * ElectronVolt},
		{"2.5MeV", 2500 * KiloElectronVolt},
		{"1 GeV", GigaElectronVolt},
		{"0.001", ElectronVolt},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEnergy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseEnergy("0.5eV")
	assert.Error(t, err)

	// 1e20 eV does not fit in an int64
	_, err = ParseEnergy("99999999999 GeV")
	assert.Error(t, err)
}

func TestLengthAndEnergyFormatting(t *testing.T) {
	assert.Equal(t, "0.1 mm", DefaultCut.String())
	assert.Equal(t, "1", Millimetre.Millimetres())
	assert.Equal(t, "0.000001", Nanometre.Millimetres())
	assert.Equal(t, "-2.5", (-2500 * Micrometre).Millimetres())
	assert.Equal(t, "1000000 keV", GigaElectronVolt.String())
	assert.Equal(t, "0.99", (990 * ElectronVolt).KiloElectronVolts())
}

func TestParseVerbosity(t *testing.T) {
	v, err := ParseVerbosity("Debug")
	require.NoError(t, err)
	assert.Equal(t, VerbosityDebug, v)
	assert.Equal(t, "debug", v.String())

	_, err = ParseVerbosity("loud")
	assert.Error(t, err)
}
