package scpi

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const shortDescriptionLimit = 100

// Command is the finished, serializable record for one SCPI command.
type Command struct {
	SCPI             string      `json:"scpi"`
	Name             string      `json:"name"`
	Group            string      `json:"group"`
	Description      string      `json:"description,omitempty"`
	ShortDescription string      `json:"shortDescription,omitempty"`
	Conditions       string      `json:"conditions,omitempty"`
	Arguments        string      `json:"arguments,omitempty"`
	Returns          string      `json:"returns,omitempty"`
	SyntaxLines      []string    `json:"syntax,omitempty"`
	SetForm          string      `json:"setSyntax,omitempty"`
	QueryForm        string      `json:"querySyntax,omitempty"`
	CommandType      string      `json:"commandType"`
	HasSet           bool        `json:"hasSet"`
	HasQuery         bool        `json:"hasQuery"`
	Params           []Parameter `json:"params,omitempty"`
	Examples         []Example   `json:"examples,omitempty"`
	Related          []string    `json:"related,omitempty"`
	Notes            []string    `json:"notes,omitempty"`
	LowConfidence    bool        `json:"lowConfidence,omitempty"`
}

// GroupEntry is one functional group in the catalog.
type GroupEntry struct {
	Description string     `json:"description,omitempty"`
	Commands    []*Command `json:"commands"`
}

// Metadata carries catalog-level totals.
type Metadata struct {
	TotalCommands int `json:"total_commands"`
	TotalGroups   int `json:"total_groups"`
}

// Catalog is the full extraction output, grouped by function.
type Catalog struct {
	Version  string                 `json:"version"`
	Manual   string                 `json:"manual,omitempty"`
	Groups   map[string]*GroupEntry `json:"groups"`
	Metadata Metadata               `json:"metadata"`
}

// Version stamps the catalog schema, not the tool release.
const CatalogVersion = "1.0"

// Finalize converts a raw extraction record into a finished command:
// syntax cleanup and set/query splitting, example validation and
// splitting, parameter inference, related-command filtering, and the
// derived display fields. Finalize never fails; a record the pipeline
// could not make sense of comes back flagged low-confidence instead.
func (s *Service) Finalize(rec *Record) *Command {
	lines := ValidateSyntax(rec.SyntaxLines, rec.Mnemonic)
	lines = EnhanceSyntaxFromArguments(lines, rec.Arguments, rec.Mnemonic)
	forms := SplitSyntax(rec.Mnemonic, lines, rec.Description)

	var examples []Example
	for _, line := range ValidateExamples(rec.Examples, rec.Mnemonic) {
		ex := SplitExample(line)
		if ex.SCPI != "" {
			examples = append(examples, ex)
		}
	}

	cmd := &Command{
		SCPI:        rec.Mnemonic,
		Name:        commandName(rec.Mnemonic),
		Group:       rec.Group,
		Description: rec.Description,
		Conditions:  rec.Conditions,
		Arguments:   rec.Arguments,
		Returns:     rec.Returns,
		SyntaxLines: lines,
		SetForm:     forms.Set,
		QueryForm:   forms.Query,
		CommandType: forms.CommandType(),
		HasSet:      forms.Set != "",
		HasQuery:    forms.Query != "",
		Examples:    examples,
		Related:     relatedCommands(rec.Related),
		Notes:       rec.Notes,
	}
	if cmd.Group == "" {
		if group, ok := inferGroupFromPrefix(rec.Mnemonic); ok {
			cmd.Group = group
		}
	}
	cmd.ShortDescription = shortDescription(rec.Description)
	cmd.Params = InferParams(rec.Mnemonic, forms, lines, rec.Arguments, examples)
	cmd.LowConfidence = cmd.Description == "" && !(cmd.Group != "" && len(cmd.SyntaxLines) > 0)
	return cmd
}

// Service turns raw records into a grouped catalog.
type Service struct {
	index *Index
	log   *logrus.Logger
}

func NewService(index *Index, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{index: index, log: log}
}

// BuildCatalog finalizes every record and buckets the results by group.
// Records without a resolvable group land in Miscellaneous rather than
// being dropped.
func (s *Service) BuildCatalog(records []*Record, manual string) *Catalog {
	cat := &Catalog{
		Version: CatalogVersion,
		Manual:  manual,
		Groups:  make(map[string]*GroupEntry),
	}
	for _, rec := range records {
		cmd := s.Finalize(rec)
		if cmd.Group == "" {
			cmd.Group = "Miscellaneous"
		}
		if cmd.LowConfidence {
			s.log.WithField("command", cmd.SCPI).Warn("low confidence record")
		}
		entry, ok := cat.Groups[cmd.Group]
		if !ok {
			entry = &GroupEntry{Description: s.index.GroupDescription(cmd.Group)}
			cat.Groups[cmd.Group] = entry
		}
		// Commands keep the order they appear in the manual.
		entry.Commands = append(entry.Commands, cmd)
		cat.Metadata.TotalCommands++
	}
	cat.Metadata.TotalGroups = len(cat.Groups)
	return cat
}

// commandName derives a human-readable name from the mnemonic: the final
// path segments joined with spaces, placeholders dropped.
func commandName(mnemonic string) string {
	m := strings.TrimSuffix(mnemonic, "?")
	m = placeholderMarkRe.ReplaceAllString(m, "")
	m = strings.TrimPrefix(m, "*")
	parts := strings.Split(m, ":")
	var words []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			words = append(words, p)
		}
	}
	return strings.Join(words, " ")
}

// shortDescription truncates at the rune boundary so multi-byte text is
// never cut mid-character.
func shortDescription(desc string) string {
	r := []rune(desc)
	if len(r) <= shortDescriptionLimit {
		return desc
	}
	return string(r[:shortDescriptionLimit]) + "..."
}

// relatedCommands keeps only the tokens of the Related section that look
// like command mnemonics; manuals pad the section with prose.
func relatedCommands(entries []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, entry := range entries {
		for _, tok := range strings.Fields(entry) {
			tok = strings.TrimRight(tok, ",.;")
			if !MatchesCommandPattern(tok) {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return out
}
