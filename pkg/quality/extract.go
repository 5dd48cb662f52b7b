// Package quality scores natural-language prompts along nine fixed quality
// dimensions. Everything in this package is a pure function of its input
// string: no I/O, no clock, no shared mutable state.
package quality

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Features holds the raw lexical counts extracted from a prompt.
type Features struct {
	WordCount      int `json:"word_count"`
	SentenceCount  int `json:"sentence_count"`
	ParagraphCount int `json:"paragraph_count"`

	ActionVerbs         int `json:"action_verbs"`
	SpecificTerms       int `json:"specific_terms"`
	TechnicalTerms      int `json:"technical_terms"`
	MustHaves           int `json:"must_haves"`
	NiceToHaves         int `json:"nice_to_haves"`
	Constraints         int `json:"constraints"`
	ContextIndicators   int `json:"context_indicators"`
	ExamplesProvided    int `json:"examples_provided"`
	DomainTerms         int `json:"domain_terms"`
	QuantitativeSpecs   int `json:"quantitative_specs"`
	ComparisonTerms     int `json:"comparison_terms"`
	BoundaryDefinitions int `json:"boundary_definitions"`
	DeliverableTerms    int `json:"deliverable_terms"`
	FormatSpecs         int `json:"format_specs"`
	QualityCriteria     int `json:"quality_criteria"`

	BulletLines   int `json:"bullet_lines"`
	NumberedLines int `json:"numbered_lines"`
	BracketChars  int `json:"bracket_chars"`
}

// PrimaryActionVerbs is the short verb list used by the analysis summary.
var PrimaryActionVerbs = []string{
	"create", "build", "implement", "design", "develop", "optimize", "analyze", "generate",
}

var (
	actionVerbs = append(append([]string(nil), PrimaryActionVerbs...),
		"process", "handle", "manage", "define", "structure", "architect", "deploy", "monitor",
		"test", "validate", "verify", "ensure", "provide", "deliver", "produce", "make", "establish",
	)
	specificTerms = []string{
		"specific", "detailed", "comprehensive", "professional", "optimized", "efficient", "scalable",
		"robust", "secure", "reliable", "production-ready", "enterprise-grade", "high-performance",
	}
	technicalTerms = []string{
		"api", "database", "function", "error", "security", "performance", "architecture", "schema",
		"algorithm", "framework", "library", "module", "component", "interface", "protocol",
		"encryption", "authentication", "cache", "query", "transaction",
	}
	mustHaves    = []string{"must", "should", "require", "mandatory", "essential", "critical"}
	niceToHaves  = []string{"could", "might", "consider", "optionally", "may", "nice-to-have", "future"}
	constraints  = []string{"limit", "constraint", "restrict", "avoid", "prevent", "maximum", "minimum", "threshold"}
	contextWords = []string{
		"background", "context", "currently", "existing", "problem", "challenge", "goal", "objective",
		"use case", "scenario", "situation", "environment",
	}
	domainTerms = []string{
		"user", "customer", "business", "enterprise", "industry", "market", "stakeholder",
		"requirement", "workflow", "process",
	}
	comparisonTerms  = []string{"better than", "faster than", "more than", "less than", "at least", "up to", "within"}
	boundaryWords    = []string{"between", "from", "to", "range", "scope", "include", "exclude"}
	deliverableTerms = []string{
		"output", "deliverable", "result", "artifact", "document", "code", "design", "report",
		"dashboard", "visualization", "specification",
	}
	formatSpecs     = []string{"format", "structure", "template", "schema", "layout", "style", "type"}
	qualityCriteria = []string{"quality", "standard", "best practice", "professional", "production", "complete", "comprehensive"}
)

// mustRX compiles pattern with Unicode-aware \b, \w and \d, so a letter
// such as é or ñ counts as part of a word.
func mustRX(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.None)
}

// wordsRX matches any of words as a whole word, case-insensitively.
func wordsRX(words ...string) *regexp2.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp2.Escape(w)
	}
	return mustRX(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// countMatches counts the non-overlapping matches of rx in text.
func countMatches(rx *regexp2.Regexp, text string) int {
	var n int
	m, err := rx.FindStringMatch(text)
	for err == nil && m != nil {
		n++
		m, err = rx.FindNextMatch(m)
	}
	return n
}

// vocabularies is applied in order, one scan per category.
var vocabularies = []struct {
	rx    *regexp2.Regexp
	count func(*Features) *int
}{
	{wordsRX(actionVerbs...), func(f *Features) *int { return &f.ActionVerbs }},
	{wordsRX(specificTerms...), func(f *Features) *int { return &f.SpecificTerms }},
	{wordsRX(technicalTerms...), func(f *Features) *int { return &f.TechnicalTerms }},
	{wordsRX(mustHaves...), func(f *Features) *int { return &f.MustHaves }},
	{wordsRX(niceToHaves...), func(f *Features) *int { return &f.NiceToHaves }},
	{wordsRX(constraints...), func(f *Features) *int { return &f.Constraints }},
	{wordsRX(contextWords...), func(f *Features) *int { return &f.ContextIndicators }},
	// abbreviations end in a period, so they only carry a leading boundary
	{mustRX(`(?i)\b(?:example|such as|for instance|like)\b|\b(?:e\.g\.|i\.e\.)`), func(f *Features) *int { return &f.ExamplesProvided }},
	{wordsRX(domainTerms...), func(f *Features) *int { return &f.DomainTerms }},
	{mustRX(`(?i)\b\d+\s*(?:(?:users?|items?|records?|requests?|ms|seconds?|gb|mb)\b|%)`), func(f *Features) *int { return &f.QuantitativeSpecs }},
	{wordsRX(comparisonTerms...), func(f *Features) *int { return &f.ComparisonTerms }},
	{wordsRX(boundaryWords...), func(f *Features) *int { return &f.BoundaryDefinitions }},
	{wordsRX(deliverableTerms...), func(f *Features) *int { return &f.DeliverableTerms }},
	{wordsRX(formatSpecs...), func(f *Features) *int { return &f.FormatSpecs }},
	{wordsRX(qualityCriteria...), func(f *Features) *int { return &f.QualityCriteria }},
	{mustRX(`(?m)^[-•*]\s`), func(f *Features) *int { return &f.BulletLines }},
	{mustRX(`\d+\.`), func(f *Features) *int { return &f.NumberedLines }},
	{mustRX(`[{}()\[\]]`), func(f *Features) *int { return &f.BracketChars }},
}

// Extract counts every lexical feature of text. It accepts any string,
// including the empty string, for which all counts are zero.
func Extract(text string) Features {
	f := Features{
		WordCount:      len(strings.Fields(text)),
		SentenceCount:  countSegments(text, "."),
		ParagraphCount: countSegments(text, "\n\n"),
	}
	for _, v := range vocabularies {
		*v.count(&f) = countMatches(v.rx, text)
	}
	return f
}

// countSegments counts the sep-delimited segments that hold non-whitespace content.
func countSegments(text, sep string) int {
	var n int
	for _, seg := range strings.Split(text, sep) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}
