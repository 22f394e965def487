package scpi

import (
	"strings"

	"github.com/abnasim/TekAutomate/internal/document"
)

// Role is the classified role of one document block.
type Role int

const (
	RoleContent Role = iota
	RoleHeader
	RoleSection
)

func (r Role) String() string {
	switch r {
	case RoleHeader:
		return "header"
	case RoleSection:
		return "section"
	}
	return "content"
}

// Classification is the outcome of classifying one block.
type Classification struct {
	Role     Role
	Mnemonic string  // canonical mnemonic, for RoleHeader
	Section  Section // for RoleSection
	// Remainder is trailing text a section label consumed from its own
	// block ("Group: Acquisition" yields "Acquisition").
	Remainder string
}

// Profile names the style markup a particular manual edition uses. The
// algorithm is the same for every edition; only the markers differ. Editions
// with a semantic paragraph style for headers set the style names; editions
// that mark structure by font family alone set the fonts.
type Profile struct {
	// HeaderStyle is the paragraph style marking command headers, when the
	// edition has one.
	HeaderStyle string
	// HeaderFont is the font family reserved for command headers in
	// editions without semantic styles. A header block must also be bold.
	HeaderFont string
	// SectionStyle is the paragraph style of section label lines.
	SectionStyle string
	// SyntaxFonts are the monospace families marking syntax lines.
	SyntaxFonts []string
}

// DefaultProfile matches the manual editions this tool was built against:
// Arial Narrow bold headers, Heading 4 section labels, Courier New or
// Lucida Console syntax lines.
func DefaultProfile() Profile {
	return Profile{
		HeaderStyle:  "Heading 4",
		HeaderFont:   "Arial Narrow",
		SectionStyle: "Heading 4",
		SyntaxFonts:  []string{"Courier New", "Lucida Console"},
	}
}

// Classifier assigns a role to each block: command header, section label,
// or plain content. It is a pure function of the block; it mutates nothing.
type Classifier struct {
	index   *Index
	profile Profile
}

// NewClassifier creates a classifier over the given command index and
// manual profile.
func NewClassifier(index *Index, profile Profile) *Classifier {
	return &Classifier{index: index, profile: profile}
}

// Classify decides one block's role. Header detection requires both the
// header style and an index-resolvable first token: style alone over-triggers
// on prose that mentions a command, pattern alone on body text shaped like
// one.
func (c *Classifier) Classify(b document.Block) Classification {
	text := strings.TrimSpace(b.Text)
	if text == "" {
		return Classification{Role: RoleContent}
	}

	if sec, remainder, ok := c.matchSectionLabel(b, text); ok {
		return Classification{Role: RoleSection, Section: sec, Remainder: remainder}
	}

	if c.isHeaderStyled(b) {
		first := firstField(text)
		if canonical, ok := c.index.Lookup(first); ok {
			return Classification{Role: RoleHeader, Mnemonic: canonical}
		}
	}

	return Classification{Role: RoleContent}
}

// sectionLabels maps lower-cased manual label text to sections, longest
// labels first so "related commands" wins over "related".
var sectionLabels = []struct {
	label   string
	section Section
}{
	{"related commands", SectionRelated},
	{"conditions", SectionConditions},
	{"arguments", SectionArguments},
	{"examples", SectionExamples},
	{"related", SectionRelated},
	{"returns", SectionReturns},
	{"syntax", SectionSyntax},
	{"group", SectionGroup},
}

// matchSectionLabel recognizes a section label line. A label matches when
// the block text equals it, or the label is followed by a colon, or, on
// section-styled blocks only, by further text on the same line. Trailing
// text becomes the new section's first content line.
func (c *Classifier) matchSectionLabel(b document.Block, text string) (Section, string, bool) {
	lower := strings.ToLower(text)
	for _, entry := range sectionLabels {
		if lower == entry.label {
			return entry.section, "", true
		}
		if !strings.HasPrefix(lower, entry.label) {
			continue
		}
		rest := text[len(entry.label):]
		if strings.HasPrefix(rest, ":") {
			return entry.section, strings.TrimSpace(rest[1:]), true
		}
		// A bare "Returns the current value." is prose, not a label; only
		// a section-styled block may carry unpunctuated trailing text.
		if strings.HasPrefix(rest, " ") && c.isSectionStyled(b) {
			return entry.section, strings.TrimSpace(rest), true
		}
	}
	return 0, "", false
}

// isHeaderStyled reports whether a block carries the manual's header
// markup: the designated paragraph style, or the reserved header font in
// bold. A bold block whose first token is a long colon-delimited command is
// accepted too; some headers lose their font attribution in conversion.
func (c *Classifier) isHeaderStyled(b document.Block) bool {
	if c.profile.HeaderStyle != "" && strings.EqualFold(b.StyleName, c.profile.HeaderStyle) {
		return true
	}
	if c.profile.HeaderFont != "" && b.HasFont(c.profile.HeaderFont) && b.Bold() {
		return true
	}
	first := firstField(b.Text)
	return b.Bold() && len(first) > 5 && strings.Contains(first, ":")
}

// isSectionStyled reports whether a block carries section label markup.
func (c *Classifier) isSectionStyled(b document.Block) bool {
	if c.profile.SectionStyle != "" && strings.EqualFold(b.StyleName, c.profile.SectionStyle) {
		return true
	}
	return c.profile.HeaderFont != "" && b.HasFont(c.profile.HeaderFont) && b.Bold()
}

// isSyntaxStyled reports whether a block uses one of the monospace syntax
// fonts.
func (c *Classifier) isSyntaxStyled(b document.Block) bool {
	for _, font := range c.profile.SyntaxFonts {
		if b.HasFont(font) {
			return true
		}
	}
	return false
}

// isNoteLine reports whether a content line is a standalone annotation.
// Notes attach to the record directly, independent of the current section.
func isNoteLine(text string) bool {
	first := strings.TrimSuffix(strings.ToLower(firstField(text)), ":")
	return first == "note"
}

func firstField(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
