package scpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnasim/TekAutomate/internal/document"
)

func newTestExtractor() *Extractor {
	return NewExtractor(NewIndex(), DefaultProfile(), nil)
}

func TestExtractSingleCommand(t *testing.T) {
	e := newTestExtractor()

	blocks := []document.Block{
		headerBlock("ACQuire:STATE"),
		proseBlock("Sets or queries acquisition state."),
		proseBlock("Syntax"),
		syntaxBlock("ACQuire:STATE {ON|OFF} ACQuire:STATE?"),
	}

	records := e.Extract(blocks)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "ACQuire:STATE", rec.Mnemonic)
	assert.Equal(t, "Sets or queries acquisition state.", rec.Description)
	assert.Equal(t, []string{"ACQuire:STATE {ON|OFF} ACQuire:STATE?"}, rec.SyntaxLines)
}

func TestExtractMergesRepeatedHeader(t *testing.T) {
	e := newTestExtractor()

	blocks := []document.Block{
		headerBlock("*IDN?"),
		proseBlock("Returns the instrument identification string."),
		headerBlock("ACQuire:MODe"),
		proseBlock("Sets the acquisition mode."),
		headerBlock("*IDN?"),
		proseBlock("Syntax"),
		syntaxBlock("*IDN?"),
	}

	records := e.Extract(blocks)
	require.Len(t, records, 2)

	idn := records[0]
	assert.Equal(t, "*IDN?", idn.Mnemonic)
	assert.Equal(t, "Returns the instrument identification string.", idn.Description)
	assert.Equal(t, []string{"*IDN?"}, idn.SyntaxLines)
}

func TestExtractDropsFrontMatter(t *testing.T) {
	e := newTestExtractor()

	blocks := []document.Block{
		proseBlock("This chapter lists commands in alphabetical order."),
		proseBlock("Syntax"),
		headerBlock("ACQuire:MODe"),
		proseBlock("Sets the acquisition mode."),
	}

	records := e.Extract(blocks)
	require.Len(t, records, 1)
	assert.Equal(t, "ACQuire:MODe", records[0].Mnemonic)
	assert.Equal(t, "Sets the acquisition mode.", records[0].Description)
}

func TestExtractSectionStateMachine(t *testing.T) {
	e := newTestExtractor()

	blocks := []document.Block{
		headerBlock("CH<x>:SCAle"),
		proseBlock("Sets or queries the vertical scale."),
		proseBlock("Group: Vertical"),
		proseBlock("Syntax"),
		syntaxBlock("CH<x>:SCAle <NR3>"),
		syntaxBlock("CH<x>:SCAle?"),
		proseBlock("Arguments"),
		proseBlock("<NR3> is the vertical scale in units per division."),
		proseBlock("Examples"),
		syntaxBlock("CH1:SCAle 1.0E+0 sets the scale to 1 volt."),
		proseBlock("Related Commands"),
		proseBlock("CH<x>:POSition, CH<x>:OFFSet"),
	}

	records := e.Extract(blocks)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Sets or queries the vertical scale.", rec.Description)
	assert.Equal(t, "Vertical", rec.Group)
	assert.Equal(t, []string{"CH<x>:SCAle <NR3>", "CH<x>:SCAle?"}, rec.SyntaxLines)
	assert.Equal(t, "<NR3> is the vertical scale in units per division.", rec.Arguments)
	assert.Equal(t, []string{"CH1:SCAle 1.0E+0 sets the scale to 1 volt."}, rec.Examples)
	assert.Equal(t, []string{"CH<x>:POSition, CH<x>:OFFSet"}, rec.Related)
}

func TestExtractNotesBypassSections(t *testing.T) {
	e := newTestExtractor()

	blocks := []document.Block{
		headerBlock("ACQuire:MODe"),
		proseBlock("Sets the acquisition mode."),
		proseBlock("Syntax"),
		proseBlock("NOTE: envelope mode requires repetitive signals."),
		syntaxBlock("ACQuire:MODe {SAMple|AVErage|ENVelope}"),
	}

	records := e.Extract(blocks)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, []string{"NOTE: envelope mode requires repetitive signals."}, rec.Notes)
	assert.Equal(t, []string{"ACQuire:MODe {SAMple|AVErage|ENVelope}"}, rec.SyntaxLines)
}

func TestExtractIndexGroupIsAuthoritative(t *testing.T) {
	ix := NewIndexFromMapping(map[string]string{"ACQuire:MODe": "Acquisition"})
	e := NewExtractor(ix, DefaultProfile(), nil)

	blocks := []document.Block{
		headerBlock("ACQuire:MODe"),
		proseBlock("Group: Something Else"),
	}

	records := e.Extract(blocks)
	require.Len(t, records, 1)
	assert.Equal(t, "Acquisition", records[0].Group)
	assert.True(t, records[0].GroupResolved)
}

func TestExtractEmptyStream(t *testing.T) {
	e := newTestExtractor()
	assert.Empty(t, e.Extract(nil))
}
