package scpi

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Index is the canonical command dictionary: known mnemonic spellings and
// their group assignments. Matching is placeholder-normalized, so CH1, CH<x>
// and ch<n> resolve to the same family. An index with no registered commands
// still resolves tokens by SCPI shape, the way the manuals without a
// precomputed mapping are processed.
type Index struct {
	canon     map[string]string // normalized key -> canonical spelling
	groups    map[string]string // normalized key -> group name
	groupDesc map[string]string // group name -> description
}

// NewIndex creates an empty index that resolves tokens by pattern only.
func NewIndex() *Index {
	return &Index{
		canon:     make(map[string]string),
		groups:    make(map[string]string),
		groupDesc: make(map[string]string),
	}
}

// NewIndexFromMapping creates an index from a mnemonic -> group mapping.
func NewIndexFromMapping(commands map[string]string) *Index {
	ix := NewIndex()
	for mnemonic, group := range commands {
		ix.Register(mnemonic, group)
	}
	return ix
}

// indexFile is the on-disk mapping format.
type indexFile struct {
	Manual   string            `yaml:"manual"`
	Commands map[string]string `yaml:"commands"`
	Groups   map[string]string `yaml:"groups"`
}

// LoadIndexFile reads a YAML command mapping file.
func LoadIndexFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}
	var parsed indexFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}
	ix := NewIndexFromMapping(parsed.Commands)
	for name, desc := range parsed.Groups {
		ix.groupDesc[name] = desc
	}
	return ix, nil
}

// Register adds a canonical mnemonic and its group to the index.
func (ix *Index) Register(mnemonic, group string) {
	mnemonic = strings.TrimSpace(mnemonic)
	if mnemonic == "" {
		return
	}
	key := Normalize(mnemonic)
	if _, exists := ix.canon[key]; !exists {
		ix.canon[key] = mnemonic
	}
	if group != "" {
		ix.groups[key] = group
	}
}

// Len returns the number of registered canonical mnemonics.
func (ix *Index) Len() int {
	return len(ix.canon)
}

// GroupDescription returns the description recorded for a group, if any.
func (ix *Index) GroupDescription(name string) string {
	return ix.groupDesc[name]
}

// Lookup resolves a raw token to its canonical mnemonic spelling. Registered
// spellings win; an unregistered token still resolves when it is shaped like
// a SCPI command, so manuals without a precomputed dictionary extract too.
func (ix *Index) Lookup(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	if canonical, ok := ix.canon[Normalize(token)]; ok {
		return canonical, true
	}
	if MatchesCommandPattern(token) {
		return token, true
	}
	return "", false
}

// GroupOf returns the group a canonical mnemonic belongs to. After an exact
// match it tries colon-delimited prefix matching in both directions, so
// sub-mnemonics not explicitly listed inherit the parent's group.
func (ix *Index) GroupOf(mnemonic string) (string, bool) {
	key := Normalize(mnemonic)
	if group, ok := ix.groups[key]; ok {
		return group, true
	}

	// Parent prefixes of the token.
	segments := strings.Split(key, ":")
	for i := len(segments) - 1; i > 0; i-- {
		if group, ok := ix.groups[strings.Join(segments[:i], ":")]; ok {
			return group, true
		}
	}

	// Registered commands the token is a prefix of.
	prefix := key + ":"
	for registered, group := range ix.groups {
		if strings.HasPrefix(registered, prefix) {
			return group, true
		}
	}
	return "", false
}

var (
	scpiTokenRe = regexp.MustCompile(`(?i)^[A-Z*][A-Z0-9<>]*(:[A-Z0-9<>]+)+\??$`)
	starTokenRe = regexp.MustCompile(`(?i)^\*[A-Z]{2,}\??$`)
)

// MatchesCommandPattern reports whether a token is shaped like a SCPI
// command: colon-delimited mnemonic segments, or a star common command.
func MatchesCommandPattern(token string) bool {
	token = strings.TrimSpace(token)
	if len(token) < 3 {
		return false
	}
	return scpiTokenRe.MatchString(token) || starTokenRe.MatchString(token)
}

// literalIndexRe rewrites literal indexed spellings (CH1) to the canonical
// placeholder, built from the family table.
var literalIndexRe = func() *regexp.Regexp {
	prefixes := make([]string, 0, len(families))
	for _, f := range families {
		prefixes = append(prefixes, f.Prefix)
	}
	return regexp.MustCompile(`\b(` + strings.Join(prefixes, "|") + `)\d+\b`)
}()

// Normalize produces the comparison key for a mnemonic: upper-cased, with
// every indexed placeholder spelling (<x>, <n>, or a literal digit after a
// known indexed prefix) collapsed to <X>, and any trailing query mark
// stripped. Normalize("CH3"), Normalize("CH<x>") and Normalize("ch<n>") are
// all equal.
func Normalize(token string) string {
	t := strings.ToUpper(strings.TrimSpace(token))
	t = strings.TrimSuffix(t, "?")
	t = placeholderMarkRe.ReplaceAllString(t, "<X>")
	t = literalIndexRe.ReplaceAllString(t, "$1<X>")
	return t
}

// inferGroupFromPrefix maps a mnemonic's leading segment to a group using
// the fixed table the manuals follow. This is the lowest-priority fallback:
// it never overrides an index mapping or a document-derived group.
func inferGroupFromPrefix(mnemonic string) (string, bool) {
	base := strings.ToUpper(strings.TrimSuffix(mnemonic, "?"))
	prefix := base
	if i := strings.IndexByte(base, ':'); i >= 0 {
		prefix = base[:i]
	}
	// Star common commands keep their star and match no prefix; their group
	// comes from the catalog's fallback bucket.
	prefix = placeholderMarkRe.ReplaceAllString(prefix, "")

	if prefix == "MARK" {
		return "Search and Mark", true
	}
	if prefix == "SEL" || prefix == "SELECT" {
		if strings.Contains(base, "DIG") || strings.Contains(base, "D<") {
			return "Digital", true
		}
		return "Search and Mark", true
	}

	if group, ok := prefixGroups[prefix]; ok {
		return group, true
	}
	for key, group := range prefixGroups {
		if len(key) >= 3 && strings.HasPrefix(prefix, key) {
			return group, true
		}
	}
	return "", false
}

var prefixGroups = map[string]string{
	"ACQ": "Acquisition", "ACQUIRE": "Acquisition",
	"TRIG": "Trigger", "TRIGGER": "Trigger",
	"CH": "Vertical", "CHANNEL": "Vertical",
	"HOR": "Horizontal", "HORIZONTAL": "Horizontal",
	"DIS": "Display control", "DISPLAY": "Display control",
	"MEAS": "Measurement", "MEASUREMENT": "Measurement",
	"MATH": "Math",
	"CURS": "Cursor", "CURSOR": "Cursor",
	"BUS": "Bus",
	"SAV": "Save and Recall", "SAVE": "Save and Recall",
	"REC": "Save and Recall", "RECALL": "Save and Recall",
	"WAV": "Waveform Transfer", "WAVEFORM": "Waveform Transfer",
	"DAT": "Waveform Transfer", "DATA": "Waveform Transfer",
	"SYST": "Miscellaneous", "SYSTEM": "Miscellaneous",
	"CAL": "Calibration",
	"DIA": "Diagnostics", "DIAG": "Diagnostics", "DIAGNOSTICS": "Diagnostics",
	"ERR": "Error Detector", "ERROR": "Error Detector",
	"EMA": "E-mail", "EMAIL": "E-mail",
	"APP": "Miscellaneous", "APPLICATION": "Miscellaneous",
	"AUX": "Vertical", "AUXIN": "Vertical", "AUXOUT": "Miscellaneous",
	"HIS": "Histogram", "HISTOGRAM": "Histogram",
	"LIM": "Limit Test", "LIMIT": "Limit Test",
	"MAS": "Mask", "MASK": "Mask",
	"SEA": "Search and Mark", "SEARCH": "Search and Mark",
	"ZOO": "Zoom", "ZOOM": "Zoom",
	"FIL": "File system", "FILE": "File system",
	"HAR": "Hard copy", "HARD": "Hard copy",
	"LOW": "Low Speed Serial Trigger",
	"SAVEON": "Save On",
	"ROS": "Miscellaneous", "ROSC": "Miscellaneous",
	"USB": "Miscellaneous", "USBTMC": "Miscellaneous",
	"FPA": "Miscellaneous", "FPANEL": "Miscellaneous",
	"SET": "Miscellaneous", "SETUP": "Miscellaneous",
	"TES": "Diagnostics", "TEST": "Diagnostics",
	"VIS": "Miscellaneous", "VISUAL": "Miscellaneous",
}
