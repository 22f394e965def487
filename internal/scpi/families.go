package scpi

import (
	"fmt"
	"regexp"
	"strings"
)

// Family describes one indexed placeholder family: a mnemonic prefix that
// stands for a numbered instrument resource with a fixed index range.
type Family struct {
	Prefix string // canonical uppercase prefix as spelled in mnemonics
	Name   string // parameter name for the index
	Min    int
	Max    int
}

// families lists the indexed resources the manuals document. Order matters:
// longer prefixes first so BUS wins over B.
var families = []Family{
	{Prefix: "HISTOGRAM", Name: "histogram", Min: 1, Max: 4},
	{Prefix: "CALLOUT", Name: "callout", Min: 1, Max: 8},
	{Prefix: "CURSOR", Name: "cursor", Min: 1, Max: 2},
	{Prefix: "SEARCH", Name: "search", Min: 1, Max: 8},
	{Prefix: "POWER", Name: "power", Min: 1, Max: 8},
	{Prefix: "MATH", Name: "math", Min: 1, Max: 4},
	{Prefix: "MEAS", Name: "meas", Min: 1, Max: 8},
	{Prefix: "PLOT", Name: "plot", Min: 1, Max: 4},
	{Prefix: "MASK", Name: "mask", Min: 1, Max: 4},
	{Prefix: "BUS", Name: "bus", Min: 1, Max: 8},
	{Prefix: "REF", Name: "ref", Min: 1, Max: 4},
	{Prefix: "CH", Name: "channel", Min: 1, Max: 8},
	{Prefix: "B", Name: "bus", Min: 1, Max: 8},
}

// maxExpandedOptions caps wildcard expansion so a malformed option list
// cannot balloon the parameter schema.
const maxExpandedOptions = 50

var (
	placeholderMarkRe = regexp.MustCompile(`<[xnXN]>`)
	indexedTokenRe    = regexp.MustCompile(`(?i)^([A-Za-z]+)<[xn]>$`)
	valueMarkerRe     = regexp.MustCompile(`(?i)<(NR[0-9]|QString|Block)>`)
)

// familyByPrefix resolves an uppercase mnemonic prefix to its family.
func familyByPrefix(prefix string) (Family, bool) {
	prefix = strings.ToUpper(prefix)
	for _, f := range families {
		if f.Prefix == prefix {
			return f, true
		}
	}
	return Family{}, false
}

// isValuePlaceholder reports whether an option token is a numeric, string,
// or block data marker rather than a literal enumerable value.
func isValuePlaceholder(token string) bool {
	return valueMarkerRe.MatchString(strings.TrimSpace(token))
}

// ExpandWildcards replaces indexed-family placeholder options with their
// literal members (CH<x> becomes CH1..CH8) and drops value placeholders.
// The result is de-duplicated, order-preserving, and capped.
func ExpandWildcards(options []string) []string {
	var expanded []string
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" || isValuePlaceholder(opt) {
			continue
		}
		m := indexedTokenRe.FindStringSubmatch(opt)
		if m == nil {
			expanded = append(expanded, opt)
			continue
		}
		fam, ok := familyByPrefix(m[1])
		if !ok {
			expanded = append(expanded, opt)
			continue
		}
		// Keep the spelling of the option itself (B<x> expands to B1, not BUS1).
		spelled := strings.ToUpper(m[1])
		for i := fam.Min; i <= fam.Max; i++ {
			expanded = append(expanded, fmt.Sprintf("%s%d", spelled, i))
		}
	}

	seen := make(map[string]struct{}, len(expanded))
	out := make([]string, 0, len(expanded))
	for _, opt := range expanded {
		if _, dup := seen[opt]; dup {
			continue
		}
		seen[opt] = struct{}{}
		out = append(out, opt)
		if len(out) >= maxExpandedOptions {
			break
		}
	}
	return out
}
