package scpi

import (
	"sort"
	"strings"

	"github.com/abnasim/TekAutomate/internal/document"
)

// BlockReport describes how the classifier saw one block. It exists for
// the inspect mode, which helps tune a profile against a new manual.
type BlockReport struct {
	Index    int    `json:"index"`
	Role     string `json:"role"`
	Font     string `json:"font,omitempty"`
	Style    string `json:"style,omitempty"`
	Bold     bool   `json:"bold,omitempty"`
	Italic   bool   `json:"italic,omitempty"`
	Syntax   bool   `json:"syntaxFont,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty"`
	Section  string `json:"section,omitempty"`
	Text     string `json:"text"`
}

// FontCount is one row of the font frequency table.
type FontCount struct {
	Font   string `json:"font"`
	Blocks int    `json:"blocks"`
}

// InspectReport summarizes a document's styling for profile tuning.
type InspectReport struct {
	Blocks []BlockReport `json:"blocks"`
	Fonts  []FontCount   `json:"fonts"`
}

const inspectSnippetLen = 80

// Inspect classifies every block and tallies font usage without building
// any records. The snippet is truncated so reports of full manuals stay
// readable.
func (e *Extractor) Inspect(blocks []document.Block) *InspectReport {
	report := &InspectReport{}
	fonts := make(map[string]int)

	for i, b := range blocks {
		c := e.classifier.Classify(b)
		font := b.DominantFont()
		if font != "" {
			fonts[font]++
		}
		br := BlockReport{
			Index:  i,
			Role:   c.Role.String(),
			Font:   font,
			Style:  b.StyleName,
			Bold:   b.Bold(),
			Italic: b.Italic(),
			Syntax: e.classifier.isSyntaxStyled(b),
			Text:   snippet(b.Text),
		}
		switch c.Role {
		case RoleHeader:
			br.Mnemonic = c.Mnemonic
		case RoleSection:
			br.Section = c.Section.String()
		}
		report.Blocks = append(report.Blocks, br)
	}

	for font, n := range fonts {
		report.Fonts = append(report.Fonts, FontCount{Font: font, Blocks: n})
	}
	sort.Slice(report.Fonts, func(i, j int) bool {
		if report.Fonts[i].Blocks != report.Fonts[j].Blocks {
			return report.Fonts[i].Blocks > report.Fonts[j].Blocks
		}
		return report.Fonts[i].Font < report.Fonts[j].Font
	})
	return report
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	r := []rune(text)
	if len(r) <= inspectSnippetLen {
		return text
	}
	return string(r[:inspectSnippetLen]) + "..."
}
