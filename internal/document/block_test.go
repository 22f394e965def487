package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockHasFont(t *testing.T) {
	b := Block{Runs: []Run{
		{Text: "ACQuire:STATE", FontFamily: "Arial Narrow", Bold: true},
		{Text: " note", FontFamily: "Times New Roman"},
	}}

	assert.True(t, b.HasFont("Arial Narrow"))
	assert.True(t, b.HasFont("arial"))
	assert.False(t, b.HasFont("Courier New"))
	assert.False(t, b.HasFont(""))
}

func TestBlockBoldItalic(t *testing.T) {
	b := Block{Runs: []Run{
		{Text: "plain"},
		{Text: "bold", Bold: true},
	}}
	assert.True(t, b.Bold())
	assert.False(t, b.Italic())

	assert.False(t, Block{}.Bold())
}

func TestBlockDominantFont(t *testing.T) {
	b := Block{Runs: []Run{
		{Text: "short", FontFamily: "Courier New"},
		{Text: "a much longer stretch of text", FontFamily: "Times New Roman"},
		{Text: "no font at all"},
	}}
	assert.Equal(t, "Times New Roman", b.DominantFont())

	assert.Empty(t, Block{}.DominantFont())
}
