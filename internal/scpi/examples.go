package scpi

import (
	"strings"
	"unicode"
)

// Example is one usage example: the SCPI snippet to send plus the prose
// describing its effect.
type Example struct {
	SCPI        string `json:"scpi"`
	Description string `json:"description,omitempty"`
}

// descriptionVerbs are the words that open the prose half of an example
// line in Tektronix manuals ("CH1:SCAle 100E-3 sets the CH1 vertical
// scale ..."). Splitting happens at the first occurrence.
var descriptionVerbs = map[string]struct{}{
	"sets":      {},
	"queries":   {},
	"returns":   {},
	"indicates": {},
	"specifies": {},
	"turns":     {},
	"enables":   {},
	"disables":  {},
	"might":     {},
	"is":        {},
	"will":      {},
	"this":      {},
}

// SplitExample divides a raw example line into the SCPI snippet and its
// description. "might return <value>" is the manuals' idiom for a sample
// query response; the returned value belongs with the snippet, so the
// split is deferred to the first prose word after it.
func SplitExample(line string) Example {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Example{}
	}

	split := -1
	for i := 1; i < len(fields); i++ {
		w := strings.ToLower(strings.TrimRight(fields[i], ".,;"))
		if _, ok := descriptionVerbs[w]; !ok {
			continue
		}
		if w == "might" && i+2 < len(fields) && strings.EqualFold(fields[i+1], "return") {
			// keep "might return TRUE" with the snippet; the
			// description resumes at the next prose word.
			for j := i + 3; j < len(fields); j++ {
				if startsLower(fields[j]) {
					split = j
					break
				}
			}
			if split < 0 {
				split = len(fields)
			}
		} else {
			split = i
		}
		break
	}

	if split < 0 {
		// No verb found: fall back to the first lowercase-initial word,
		// which marks the start of prose after the uppercase snippet.
		for i := 1; i < len(fields); i++ {
			if startsLower(fields[i]) {
				split = i
				break
			}
		}
	}
	if split < 0 || split >= len(fields) {
		return Example{SCPI: strings.Join(fields, " ")}
	}
	return Example{
		SCPI:        strings.Join(fields[:split], " "),
		Description: strings.Join(fields[split:], " "),
	}
}

// ValidateExamples keeps only lines that plausibly begin with an
// invocation of this command. Star commands have no colon, so the colon
// requirement is waived for them.
func ValidateExamples(lines []string, mnemonic string) []string {
	prefix := strings.ToUpper(baseMnemonic(mnemonic))
	if prefix == "" {
		return nil
	}
	head := prefix
	if i := strings.Index(head, ":"); i > 0 {
		head = head[:i]
	}
	head = strings.TrimSuffix(placeholderMarkRe.ReplaceAllString(head, ""), ":")

	var kept []string
	for _, line := range lines {
		first := strings.ToUpper(firstField(line))
		if first == "" {
			continue
		}
		canon := placeholderMarkRe.ReplaceAllString(first, "")
		if !strings.HasPrefix(canon, head) {
			continue
		}
		if strings.Contains(first, ":") || strings.HasPrefix(prefix, "*") {
			kept = append(kept, strings.TrimSpace(line))
		}
	}
	return kept
}

func startsLower(word string) bool {
	r := []rune(word)
	return len(r) > 0 && unicode.IsLower(r[0])
}
