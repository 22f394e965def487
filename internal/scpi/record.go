// Package scpi recovers a structured command database from the styled block
// stream of an instrument programmer manual. The manual carries no markup;
// every structural decision here is a heuristic over font cues and section
// keyword lines, and every heuristic degrades to free text rather than
// failing the run.
package scpi

import (
	"regexp"
	"strings"
)

// Section identifies which labeled subsection of a command entry the current
// content belongs to. Description is implicit: it is the text between the
// command header and the first labeled section.
type Section int

const (
	SectionDescription Section = iota
	SectionGroup
	SectionSyntax
	SectionArguments
	SectionExamples
	SectionRelated
	SectionReturns
	SectionConditions
)

func (s Section) String() string {
	switch s {
	case SectionDescription:
		return "description"
	case SectionGroup:
		return "group"
	case SectionSyntax:
		return "syntax"
	case SectionArguments:
		return "arguments"
	case SectionExamples:
		return "examples"
	case SectionRelated:
		return "related"
	case SectionReturns:
		return "returns"
	case SectionConditions:
		return "conditions"
	}
	return "unknown"
}

// Record is one command entry as assembled from the manual, mutable during
// extraction and read-only once finalized into a Command.
type Record struct {
	Mnemonic    string
	Group       string
	Description string
	Conditions  string
	Arguments   string
	Returns     string
	SyntaxLines []string
	Examples    []string
	Related     []string
	Notes       []string

	// GroupResolved marks a group assigned from the command index. Such a
	// group is authoritative and never overwritten by document text.
	GroupResolved bool
}

// setSection writes flushed section content into the matching field.
// Scalar fields keep their first non-empty value; list fields append.
func (r *Record) setSection(sec Section, lines []string) {
	switch sec {
	case SectionDescription:
		if r.Description == "" {
			r.Description = cleanText(lines)
		}
	case SectionGroup:
		if !r.GroupResolved && r.Group == "" {
			r.Group = cleanText(lines)
		}
	case SectionConditions:
		if r.Conditions == "" {
			r.Conditions = cleanText(lines)
		}
	case SectionArguments:
		if r.Arguments == "" {
			r.Arguments = cleanText(lines)
		}
	case SectionReturns:
		if r.Returns == "" {
			r.Returns = cleanText(lines)
		}
	case SectionSyntax:
		r.SyntaxLines = append(r.SyntaxLines, trimNonEmpty(lines)...)
	case SectionExamples:
		r.Examples = append(r.Examples, trimNonEmpty(lines)...)
	case SectionRelated:
		r.Related = append(r.Related, trimNonEmpty(lines)...)
	}
}

// Merge absorbs another partial record for the same mnemonic. Scalar fields
// keep the receiver's value when both are set; list fields are unioned
// order-preserving. Merging is idempotent and, for records with disjoint
// fields, commutative.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	if other.GroupResolved && !r.GroupResolved {
		r.Group = other.Group
		r.GroupResolved = true
	} else if r.Group == "" && !r.GroupResolved {
		r.Group = other.Group
	}
	if r.Description == "" {
		r.Description = other.Description
	}
	if r.Conditions == "" {
		r.Conditions = other.Conditions
	}
	if r.Arguments == "" {
		r.Arguments = other.Arguments
	}
	if r.Returns == "" {
		r.Returns = other.Returns
	}
	r.SyntaxLines = unionStrings(r.SyntaxLines, other.SyntaxLines)
	r.Examples = unionStrings(r.Examples, other.Examples)
	r.Related = unionStrings(r.Related, other.Related)
	r.Notes = unionStrings(r.Notes, other.Notes)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanText joins buffered lines into one paragraph with collapsed
// whitespace. Empty input yields "".
func cleanText(lines []string) string {
	joined := strings.TrimSpace(strings.Join(lines, " "))
	if joined == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(joined, " ")
}

func trimNonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// unionStrings appends entries of b not already present in a, preserving
// first-seen order.
func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		seen[s] = struct{}{}
	}
	for _, s := range b {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		a = append(a, s)
	}
	return a
}
