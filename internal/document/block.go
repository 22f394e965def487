// Package document loads programmer manuals into an ordered stream of styled
// text blocks. The extraction core never touches files or document formats
// directly; it consumes the Block sequence produced here.
package document

import "strings"

// Run is a contiguous span of text sharing one set of character properties.
type Run struct {
	Text       string
	FontFamily string
	Bold       bool
	Italic     bool
}

// Block is one paragraph-level unit of the source document, with the style
// cues the classifier needs: per-run font attributes and the paragraph style
// name when the format carries one.
type Block struct {
	Text      string
	Runs      []Run
	StyleName string
}

// HasFont reports whether any run uses a font family containing name,
// case-insensitively. An empty name never matches.
func (b Block) HasFont(name string) bool {
	if name == "" {
		return false
	}
	name = strings.ToLower(name)
	for _, r := range b.Runs {
		if r.FontFamily != "" && strings.Contains(strings.ToLower(r.FontFamily), name) {
			return true
		}
	}
	return false
}

// Bold reports whether any run in the block is bold.
func (b Block) Bold() bool {
	for _, r := range b.Runs {
		if r.Bold {
			return true
		}
	}
	return false
}

// Italic reports whether any run in the block is italic.
func (b Block) Italic() bool {
	for _, r := range b.Runs {
		if r.Italic {
			return true
		}
	}
	return false
}

// DominantFont returns the font family of the longest run, or "" when no run
// carries a font name.
func (b Block) DominantFont() string {
	font := ""
	longest := 0
	for _, r := range b.Runs {
		if r.FontFamily == "" {
			continue
		}
		if n := len(r.Text); n >= longest {
			longest = n
			font = r.FontFamily
		}
	}
	return font
}

// Loader reads a manual file into an ordered block sequence.
type Loader interface {
	ReadFile(path string) ([]Block, error)
}
