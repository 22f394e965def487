package scpi

import (
	"regexp"
	"strings"
)

// SyntaxForms holds the split set and query syntax of one command. Either
// form may be empty for set-only or query-only commands.
type SyntaxForms struct {
	Set   string
	Query string
}

// CommandType summarizes which forms a command supports.
func (f SyntaxForms) CommandType() string {
	switch {
	case f.Set != "" && f.Query != "":
		return "both"
	case f.Query != "":
		return "query"
	case f.Set != "":
		return "set"
	}
	return "none"
}

var (
	braceGroupRe      = regexp.MustCompile(`\{[^}]+\}`)
	braceOnlyLineRe   = regexp.MustCompile(`^\{[^}]+\}$`)
	trailingQueryRe   = regexp.MustCompile(`\s+([A-Za-z*][A-Za-z0-9:]*(?:<[xn]>)?[A-Za-z0-9:]*\?)\s*$`)
	argumentsOptionRe = regexp.MustCompile(`\{([A-Z][A-Za-z0-9]*(?:\|[A-Z][A-Za-z0-9<>]*)+)\}`)
	optionRunRe       = regexp.MustCompile(`\b([A-Z][A-Za-z0-9]{2,}(?:\s*[,|]\s*[A-Z][A-Za-z0-9]{2,}){2,})\b`)
)

// hasArgumentMarker reports whether text carries a settable-argument signal:
// a brace group or a numeric/string placeholder.
func hasArgumentMarker(text string) bool {
	return strings.Contains(text, "{") || valueMarkerRe.MatchString(text)
}

// baseMnemonic returns the header's first token without a query suffix.
func baseMnemonic(mnemonic string) string {
	return strings.TrimSuffix(firstField(mnemonic), "?")
}

// ValidateSyntax cleans a record's raw syntax lines: a line that is only a
// brace group is the option list for the preceding set form and is merged
// onto it; other lines survive only when they start with the command's
// leading mnemonic segment.
func ValidateSyntax(lines []string, mnemonic string) []string {
	base := strings.ToUpper(baseMnemonic(mnemonic))
	prefix := base
	if i := strings.IndexByte(base, ':'); i >= 0 {
		prefix = base[:i]
	}

	var valid []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if braceOnlyLineRe.MatchString(line) && strings.Contains(line, "|") {
			if n := len(valid); n > 0 && !strings.Contains(valid[n-1], "?") && !strings.Contains(valid[n-1], "{") {
				valid[n-1] = valid[n-1] + " " + line
				continue
			}
			valid = append(valid, line)
			continue
		}
		if strings.HasPrefix(strings.ToUpper(line), prefix) {
			valid = append(valid, line)
		}
	}
	return valid
}

// EnhanceSyntaxFromArguments copies an option list out of the Arguments free
// text onto the set-form syntax when no syntax line carries one. Manuals
// sometimes print the braces only in the Arguments section.
func EnhanceSyntaxFromArguments(lines []string, argumentsText, mnemonic string) []string {
	if argumentsText == "" || len(lines) == 0 {
		return lines
	}
	joined := strings.Join(lines, " ")
	if strings.Contains(joined, "{") && strings.Contains(joined, "|") {
		return lines
	}

	options := ""
	if m := argumentsOptionRe.FindString(argumentsText); m != "" {
		options = m
	} else if m := optionRunRe.FindStringSubmatch(argumentsText); m != nil {
		parts := regexp.MustCompile(`[,|]`).Split(m[1], -1)
		var kept []string
		for _, p := range parts {
			if p = strings.TrimSpace(p); len(p) >= 3 {
				kept = append(kept, p)
			}
		}
		if len(kept) >= 2 {
			options = "{" + strings.Join(kept, "|") + "}"
		}
	}
	if options == "" {
		return lines
	}

	enhanced := make([]string, len(lines))
	for i, line := range lines {
		if !strings.Contains(line, "?") && !strings.Contains(line, "{") && !strings.Contains(line, "|") {
			enhanced[i] = line + " " + options
		} else {
			enhanced[i] = line
		}
	}
	return enhanced
}

// SplitSyntax recovers the distinct set and query forms from raw syntax
// lines. A single physical line often prints both forms concatenated; the
// split point is the second occurrence of the header text when present,
// otherwise a trailing query-shaped token. The first non-empty form of each
// kind wins; missing forms are synthesized from the mnemonic unless the
// command is query-only.
func SplitSyntax(mnemonic string, lines []string, description string) SyntaxForms {
	var forms SyntaxForms
	base := baseMnemonic(mnemonic)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.Contains(line, "?") {
			if forms.Set == "" {
				forms.Set = line
			}
			continue
		}

		// Both forms on one physical line: split at the second occurrence
		// of the header text.
		if base != "" && strings.Count(line, base) >= 2 {
			first := strings.Index(line, base)
			second := strings.Index(line[first+len(base):], base)
			if second >= 0 {
				cut := first + len(base) + second
				setPart := strings.TrimSpace(line[:cut])
				queryPart := strings.TrimSpace(line[cut:])
				if forms.Set == "" && setPart != "" {
					forms.Set = setPart
				}
				if forms.Query == "" && queryPart != "" {
					forms.Query = queryPart
				}
				continue
			}
		}

		// A trailing query token after an argument-bearing prefix.
		if m := trailingQueryRe.FindStringSubmatchIndex(line); m != nil {
			prefix := strings.TrimSpace(line[:m[2]])
			query := line[m[2]:m[3]]
			if prefix != "" && hasArgumentMarker(prefix) {
				if forms.Set == "" {
					forms.Set = prefix
				}
				if forms.Query == "" {
					forms.Query = query
				}
				continue
			}
		}

		// Whole line is one form; the presence of an argument marker makes
		// it the set form despite the query mark.
		if hasArgumentMarker(line) {
			if forms.Set == "" {
				forms.Set = line
			}
		} else if forms.Query == "" {
			forms.Query = line
		}
	}

	queryOnly := strings.HasSuffix(mnemonic, "?") ||
		strings.Contains(strings.ToLower(description), "query only")

	if forms.Query == "" {
		if strings.HasSuffix(mnemonic, "?") {
			forms.Query = mnemonic
		} else {
			forms.Query = mnemonic + "?"
		}
	}
	if forms.Set == "" && !queryOnly {
		forms.Set = strings.TrimSuffix(mnemonic, "?")
	}
	return forms
}
