package scpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitExampleVerbBoundary(t *testing.T) {
	ex := SplitExample("CH1:SCAle 100E-3 sets the CH1 vertical scale to 100 mV per division.")
	assert.Equal(t, "CH1:SCAle 100E-3", ex.SCPI)
	assert.Equal(t, "sets the CH1 vertical scale to 100 mV per division.", ex.Description)
}

func TestSplitExampleMightReturnKeepsValue(t *testing.T) {
	ex := SplitExample("SEARCH:SEARCH1:TRIGger:A:LOGIc:WHEn FALSE might return TRUE indicating the search criteria")
	assert.Equal(t, "SEARCH:SEARCH1:TRIGger:A:LOGIc:WHEn FALSE might return TRUE", ex.SCPI)
	assert.Equal(t, "indicating the search criteria", ex.Description)
}

func TestSplitExampleMightReturnAtEnd(t *testing.T) {
	ex := SplitExample("ACQuire:STATE? might return 1")
	assert.Equal(t, "ACQuire:STATE? might return 1", ex.SCPI)
	assert.Empty(t, ex.Description)
}

func TestSplitExampleLowercaseFallback(t *testing.T) {
	ex := SplitExample("ACQuire:MODe AVErage selects averaged acquisition.")
	assert.Equal(t, "ACQuire:MODe AVErage", ex.SCPI)
	assert.Equal(t, "selects averaged acquisition.", ex.Description)
}

func TestSplitExampleNoDescription(t *testing.T) {
	ex := SplitExample("ACQuire:STATE ON")
	assert.Equal(t, "ACQuire:STATE ON", ex.SCPI)
	assert.Empty(t, ex.Description)
}

func TestSplitExampleEmpty(t *testing.T) {
	ex := SplitExample("   ")
	assert.Empty(t, ex.SCPI)
}

func TestValidateExamplesKeepsMatchingCommand(t *testing.T) {
	lines := []string{
		"CH1:SCAle 1.0E+0 sets the scale.",
		"This example shows typical usage.",
		"TRIGger:A:MODe NORMal sets the trigger mode.",
	}
	got := ValidateExamples(lines, "CH<x>:SCAle")
	assert.Equal(t, []string{"CH1:SCAle 1.0E+0 sets the scale."}, got)
}

func TestValidateExamplesStarCommand(t *testing.T) {
	got := ValidateExamples([]string{"*IDN? might return TEKTRONIX,MSO58"}, "*IDN?")
	assert.Equal(t, []string{"*IDN? might return TEKTRONIX,MSO58"}, got)
}

func TestValidateExamplesRequiresColonForTreeCommands(t *testing.T) {
	// A bare word sharing the command's leading letters is prose, not an
	// invocation.
	got := ValidateExamples([]string{"CHeck the display before proceeding."}, "CH<x>:SCAle")
	assert.Empty(t, got)
}
