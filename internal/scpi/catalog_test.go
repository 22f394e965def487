package scpi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(NewIndex(), nil)
}

func TestFinalizeFullRecord(t *testing.T) {
	rec := &Record{
		Mnemonic:    "ACQuire:STATE",
		Group:       "Acquisition",
		Description: "Starts or stops acquisitions, or queries whether acquisitions are running.",
		SyntaxLines: []string{"ACQuire:STATE {ON|OFF} ACQuire:STATE?"},
		Examples:    []string{"ACQuire:STATE ON starts acquisitions."},
		Related:     []string{"ACQuire:MODe and the STOPAfter setting"},
	}

	cmd := newTestService().Finalize(rec)

	assert.Equal(t, "ACQuire:STATE", cmd.SCPI)
	assert.Equal(t, "ACQuire STATE", cmd.Name)
	assert.Equal(t, "ACQuire:STATE {ON|OFF}", cmd.SetForm)
	assert.Equal(t, "ACQuire:STATE?", cmd.QueryForm)
	assert.Equal(t, "both", cmd.CommandType)
	assert.True(t, cmd.HasSet)
	assert.True(t, cmd.HasQuery)
	assert.False(t, cmd.LowConfidence)

	require.Len(t, cmd.Params, 1)
	assert.Equal(t, "state", cmd.Params[0].Name)

	require.Len(t, cmd.Examples, 1)
	assert.Equal(t, "ACQuire:STATE ON", cmd.Examples[0].SCPI)
	assert.Equal(t, "starts acquisitions.", cmd.Examples[0].Description)

	// Prose in the Related section is filtered down to mnemonics.
	assert.Equal(t, []string{"ACQuire:MODe"}, cmd.Related)
}

func TestFinalizeLowConfidence(t *testing.T) {
	cmd := newTestService().Finalize(&Record{Mnemonic: "ACQuire:STATE"})
	assert.True(t, cmd.LowConfidence)

	// A group plus syntax is enough to trust a description-less record.
	cmd = newTestService().Finalize(&Record{
		Mnemonic:    "ACQuire:STATE",
		Group:       "Acquisition",
		SyntaxLines: []string{"ACQuire:STATE {ON|OFF}"},
	})
	assert.False(t, cmd.LowConfidence)
}

func TestFinalizeInfersGroupFromPrefix(t *testing.T) {
	cmd := newTestService().Finalize(&Record{
		Mnemonic:    "TRIGger:A:EDGE:SOUrce",
		Description: "Sets the edge trigger source.",
	})
	assert.Equal(t, "Trigger", cmd.Group)
}

func TestFinalizeShortDescription(t *testing.T) {
	long := strings.Repeat("waveform acquisition control ", 8)
	cmd := newTestService().Finalize(&Record{Mnemonic: "ACQuire:STATE", Description: long})

	assert.True(t, strings.HasSuffix(cmd.ShortDescription, "..."))
	assert.Len(t, []rune(cmd.ShortDescription), shortDescriptionLimit+3)
}

func TestBuildCatalogGrouping(t *testing.T) {
	records := []*Record{
		{Mnemonic: "ACQuire:STATE", Group: "Acquisition", Description: "Starts acquisitions."},
		{Mnemonic: "ACQuire:MODe", Group: "Acquisition", Description: "Sets the mode."},
		{Mnemonic: "XXX:UNKNOWN", Description: "No group resolvable."},
	}

	cat := newTestService().BuildCatalog(records, "Test Programmer Manual")

	assert.Equal(t, CatalogVersion, cat.Version)
	assert.Equal(t, "Test Programmer Manual", cat.Manual)
	assert.Equal(t, 3, cat.Metadata.TotalCommands)
	assert.Equal(t, 2, cat.Metadata.TotalGroups)

	acq, ok := cat.Groups["Acquisition"]
	require.True(t, ok)
	require.Len(t, acq.Commands, 2)
	// Commands keep the order they appeared in the manual.
	assert.Equal(t, "ACQuire:STATE", acq.Commands[0].SCPI)
	assert.Equal(t, "ACQuire:MODe", acq.Commands[1].SCPI)

	misc, ok := cat.Groups["Miscellaneous"]
	require.True(t, ok)
	assert.Len(t, misc.Commands, 1)
}

func TestBuildCatalogStarCommandFallsToMiscellaneous(t *testing.T) {
	cat := newTestService().BuildCatalog([]*Record{
		{Mnemonic: "*IDN?", Description: "Returns the identification string."},
	}, "")

	misc, ok := cat.Groups["Miscellaneous"]
	require.True(t, ok)
	require.Len(t, misc.Commands, 1)
	assert.Equal(t, "*IDN?", misc.Commands[0].SCPI)
}

func TestBuildCatalogGroupDescriptions(t *testing.T) {
	ix := NewIndexFromMapping(map[string]string{"ACQuire:STATE": "Acquisition"})
	ix.groupDesc["Acquisition"] = "Waveform acquisition control."
	svc := NewService(ix, nil)

	cat := svc.BuildCatalog([]*Record{
		{Mnemonic: "ACQuire:STATE", Group: "Acquisition", Description: "Starts acquisitions."},
	}, "")

	assert.Equal(t, "Waveform acquisition control.", cat.Groups["Acquisition"].Description)
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "CH SCAle", commandName("CH<x>:SCAle"))
	assert.Equal(t, "IDN", commandName("*IDN?"))
	assert.Equal(t, "ACQuire STATE", commandName("ACQuire:STATE"))
}
