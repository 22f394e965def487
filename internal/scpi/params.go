package scpi

import (
	"regexp"
	"strconv"
	"strings"
)

// ParamKind is the inferred type of a command parameter.
type ParamKind string

const (
	KindInteger     ParamKind = "integer"
	KindFloat       ParamKind = "float"
	KindString      ParamKind = "string"
	KindEnumeration ParamKind = "enumeration"
)

// Parameter is one typed, named parameter of a command. Parameters are
// derived during post-processing and never mutated afterwards.
type Parameter struct {
	Name     string    `json:"name"`
	Kind     ParamKind `json:"type"`
	Required bool      `json:"required"`
	Default  any       `json:"default,omitempty"`
	Options  []string  `json:"options,omitempty"`
	Min      *int      `json:"min,omitempty"`
	Max      *int      `json:"max,omitempty"`
}

var (
	headerPlaceholderRe = regexp.MustCompile(`(?i)([A-Za-z]+)<[xn]>`)
	trailingSourceRe    = regexp.MustCompile(`(?i)\s+((?:CH|MATH|REF)<[xn]>)\s*$`)
	intMarkerRe         = regexp.MustCompile(`(?i)<NR1>`)
	floatMarkerRe       = regexp.MustCompile(`(?i)<NR[23]>`)
	stringMarkerRe      = regexp.MustCompile(`(?i)<QString>`)
	numericLiteralRe    = regexp.MustCompile(`^-?[\d.]+(?:[eE][-+]?\d+)?$`)
	quotedLiteralRe     = regexp.MustCompile(`^".*"$`)
	boolLiteralRe       = regexp.MustCompile(`(?i)^(ON|OFF|0|1)$`)
	optionLiteralRe     = regexp.MustCompile(`(?i)^[A-Z]+\d*$`)
	familyOptionRe      = regexp.MustCompile(`^(CH|MATH|REF|BUS|B|MEAS|SEARCH|PLOT)\d+$`)
)

// InferParams derives the typed parameter list for a command. The rules run
// in order of grammar specificity: header path placeholders, then a
// trailing bare source token, then brace enumerations, then numeric/string
// placeholders. At most one value parameter is ever emitted, because the
// manuals document at most one settable value per command.
func InferParams(mnemonic string, forms SyntaxForms, syntaxLines []string, argumentsText string, examples []Example) []Parameter {
	var params []Parameter

	params = append(params, headerPlaceholderParams(mnemonic)...)

	setSyntax := forms.Set
	if setSyntax == "" {
		setSyntax = joinSetLines(syntaxLines)
	}

	if p, ok := trailingSourceParam(setSyntax); ok {
		params = append(params, p)
	}

	if p, ok := braceEnumParam(setSyntax, params); ok {
		params = append(params, p)
	}

	if !hasValueEnum(params) {
		if p, ok := valuePlaceholderParam(setSyntax, syntaxLines); ok {
			if def, found := exampleDefault(examples, p.Kind); found {
				p.Default = def
			}
			params = append(params, p)
		}
	}

	// Last resort: an Arguments section that names the type in prose.
	if len(params) == 0 && argumentsText != "" {
		if p, ok := argumentsTextParam(argumentsText); ok {
			params = append(params, p)
		}
	}

	return params
}

// headerPlaceholderParams emits one integer path parameter per distinct
// indexed family present in the mnemonic itself (CH<x>:SCAle yields a
// channel index). These address the resource, not the settable value.
func headerPlaceholderParams(mnemonic string) []Parameter {
	var params []Parameter
	seen := make(map[string]struct{})
	for _, m := range headerPlaceholderRe.FindAllStringSubmatch(mnemonic, -1) {
		fam, ok := familyByPrefix(m[1])
		if !ok {
			continue
		}
		if _, dup := seen[fam.Name]; dup {
			continue
		}
		seen[fam.Name] = struct{}{}
		minV, maxV := fam.Min, fam.Max
		params = append(params, Parameter{
			Name:     fam.Name,
			Kind:     KindInteger,
			Required: true,
			Default:  fam.Min,
			Min:      &minV,
			Max:      &maxV,
		})
	}
	return params
}

// trailingSourceParam handles a set form ending in a bare indexed
// placeholder outside any brace group: the argument is a waveform source.
func trailingSourceParam(setSyntax string) (Parameter, bool) {
	m := trailingSourceRe.FindStringSubmatch(setSyntax)
	if m == nil {
		return Parameter{}, false
	}
	options := ExpandWildcards([]string{strings.ToUpper(m[1])})
	if len(options) == 0 {
		return Parameter{}, false
	}
	return Parameter{
		Name:     "source",
		Kind:     KindEnumeration,
		Required: true,
		Default:  options[0],
		Options:  options,
	}, true
}

// braceEnumParam emits at most one enumeration from the first usable
// {A|B|...} group in the set syntax. A group whose options are all value
// placeholders is not an enumeration: it marks a numeric or string
// argument and is left for valuePlaceholderParam.
func braceEnumParam(setSyntax string, existing []Parameter) (Parameter, bool) {
	for _, group := range braceGroupRe.FindAllString(setSyntax, -1) {
		raw := strings.Split(strings.Trim(group, "{}"), "|")
		all := true
		var literals []string
		for _, opt := range raw {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				continue
			}
			if isValuePlaceholder(opt) {
				continue
			}
			all = false
			literals = append(literals, opt)
		}
		if all || len(literals) == 0 {
			continue
		}

		options := ExpandWildcards(literals)
		if len(options) == 0 {
			continue
		}
		name := enumParamName(options)
		if hasParamNamed(existing, name) {
			continue
		}
		return Parameter{
			Name:     name,
			Kind:     KindEnumeration,
			Required: true,
			Default:  options[0],
			Options:  options,
		}, true
	}
	return Parameter{}, false
}

// enumParamName names an enumeration by its option shape: the boolean pair
// is a state, indexed-family members are a source, anything else a value.
func enumParamName(options []string) string {
	if len(options) == 2 {
		has := map[string]bool{}
		for _, o := range options {
			has[strings.ToUpper(o)] = true
		}
		if has["ON"] && has["OFF"] {
			return "state"
		}
	}
	familyCount := 0
	for _, o := range options {
		if familyOptionRe.MatchString(strings.ToUpper(o)) {
			familyCount++
		}
	}
	if familyCount*2 > len(options) {
		return "source"
	}
	return "value"
}

// valuePlaceholderParam maps a numeric or string placeholder in the set
// syntax to a single value parameter.
func valuePlaceholderParam(setSyntax string, lines []string) (Parameter, bool) {
	full := setSyntax + " " + strings.Join(lines, " ")
	switch {
	case intMarkerRe.MatchString(full):
		return Parameter{Name: "value", Kind: KindInteger, Required: true}, true
	case floatMarkerRe.MatchString(full):
		return Parameter{Name: "value", Kind: KindFloat, Required: true}, true
	case stringMarkerRe.MatchString(full):
		return Parameter{Name: "label", Kind: KindString, Required: true}, true
	}
	return Parameter{}, false
}

// argumentsTextParam falls back to the Arguments prose when the syntax
// carried no machine-readable marker at all.
func argumentsTextParam(text string) (Parameter, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "integer"):
		return Parameter{Name: "value", Kind: KindInteger, Required: true}, true
	case strings.Contains(lower, "float"), strings.Contains(lower, "nr2"), strings.Contains(lower, "nr3"):
		return Parameter{Name: "value", Kind: KindFloat, Required: true}, true
	case strings.Contains(lower, "string"), strings.Contains(lower, "quoted"):
		return Parameter{Name: "label", Kind: KindString, Required: true}, true
	}
	return Parameter{}, false
}

// exampleDefault pulls the literal default for the value parameter from the
// first set-form example: the final token of the SCPI snippet, accepted
// only when its shape matches the parameter's kind.
func exampleDefault(examples []Example, kind ParamKind) (any, bool) {
	for _, ex := range examples {
		snippet := strings.TrimSpace(ex.SCPI)
		if snippet == "" || strings.Contains(snippet, "?") {
			continue
		}
		i := strings.LastIndexAny(snippet, " \t")
		if i < 0 {
			continue
		}
		token := strings.TrimSpace(snippet[i+1:])
		if !looksLikeValue(token) {
			continue
		}
		switch kind {
		case KindInteger:
			if f, err := strconv.ParseFloat(token, 64); err == nil {
				return int(f), true
			}
		case KindFloat:
			if f, err := strconv.ParseFloat(token, 64); err == nil {
				return f, true
			}
		case KindString:
			return strings.Trim(token, `"'`), true
		}
		return nil, false
	}
	return nil, false
}

// looksLikeValue accepts tokens shaped like an argument literal: numbers,
// booleans, quoted strings, or short option words.
func looksLikeValue(token string) bool {
	return numericLiteralRe.MatchString(token) ||
		boolLiteralRe.MatchString(token) ||
		quotedLiteralRe.MatchString(token) ||
		optionLiteralRe.MatchString(token)
}

// hasValueEnum reports whether a value-enumeration (not a path parameter)
// was already emitted.
func hasValueEnum(params []Parameter) bool {
	for _, p := range params {
		if p.Kind == KindEnumeration {
			return true
		}
	}
	return false
}

func hasParamNamed(params []Parameter, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func joinSetLines(lines []string) string {
	var set []string
	for _, l := range lines {
		if !strings.Contains(l, "?") {
			set = append(set, l)
		}
	}
	return strings.Join(set, " ")
}
