package quality

// Grade labels a report by its overall score.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
)

// GradeOf returns the label for an overall score.
func GradeOf(overall float64) Grade {
	switch {
	case overall >= 8:
		return GradeExcellent
	case overall >= 6:
		return GradeGood
	case overall >= 4:
		return GradeFair
	default:
		return GradePoor
	}
}

// Metadata exposes the diagnostic counters behind a report.
type Metadata struct {
	WordCount              int `json:"word_count"`
	SentenceCount          int `json:"sentence_count"`
	ParagraphCount         int `json:"paragraph_count"`
	ActionVerbs            int `json:"action_verbs"`
	SpecificTerms          int `json:"specific_terms"`
	TechnicalTerms         int `json:"technical_terms"`
	RequirementsIndicators int `json:"requirements_indicators"`
	ContextIndicators      int `json:"context_indicators"`
	QuantitativeSpecs      int `json:"quantitative_specs"`
	DeliverableTerms       int `json:"deliverable_terms"`
}

// Report is the scored result for one prompt. Scores are rounded to two
// decimals; Overall is computed from the unrounded dimensions.
type Report struct {
	Scores
	Overall  float64  `json:"overall"`
	Grade    Grade    `json:"grade"`
	Metadata Metadata `json:"metadata"`
}

// Score runs the feature extractor and the dimension scorer over text.
func Score(text string) Report {
	return FromFeatures(Extract(text))
}

// FromFeatures builds a report from already extracted features.
func FromFeatures(f Features) Report {
	dims := Dimensions(f)
	overall := Round2(dims.Overall())
	return Report{
		Scores:  dims.rounded(),
		Overall: overall,
		Grade:   GradeOf(overall),
		Metadata: Metadata{
			WordCount:              f.WordCount,
			SentenceCount:          f.SentenceCount,
			ParagraphCount:         f.ParagraphCount,
			ActionVerbs:            f.ActionVerbs,
			SpecificTerms:          f.SpecificTerms,
			TechnicalTerms:         f.TechnicalTerms,
			RequirementsIndicators: f.MustHaves + f.NiceToHaves,
			ContextIndicators:      f.ContextIndicators,
			QuantitativeSpecs:      f.QuantitativeSpecs,
			DeliverableTerms:       f.DeliverableTerms,
		},
	}
}

// Improvement is the relative change of the overall score in percent.
// A content-free original scores zero, in which case a flat 20 is reported.
func Improvement(original, optimized Report) float64 {
	if original.Overall <= 0 {
		return 20
	}
	return Round2((optimized.Overall - original.Overall) / original.Overall * 100)
}
