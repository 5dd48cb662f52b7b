package quality

import "math"

// MaxScore is the ceiling every dimension and the overall score is clamped to.
const MaxScore = 10.0

// Dimension names one axis of prompt quality.
type Dimension string

const (
	Clarity             Dimension = "clarity"
	Specificity         Dimension = "specificity"
	Completeness        Dimension = "completeness"
	Technical           Dimension = "technical"
	Structure           Dimension = "structure"
	Practicality        Dimension = "practicality"
	ContextRichness     Dimension = "context_richness"
	ConstraintClarity   Dimension = "constraint_clarity"
	OutputSpecification Dimension = "output_specification"
)

// Weights is the fixed weighting of the overall score, in report order.
// The weights sum to 1.0.
var Weights = [...]struct {
	Dimension Dimension
	Weight    float64
}{
	{Clarity, 0.15},
	{Specificity, 0.15},
	{Completeness, 0.10},
	{Technical, 0.10},
	{Structure, 0.08},
	{Practicality, 0.10},
	{ContextRichness, 0.12},
	{ConstraintClarity, 0.10},
	{OutputSpecification, 0.10},
}

// Scores holds the nine dimension scores, each in [0, MaxScore].
type Scores struct {
	Clarity             float64 `json:"clarity"`
	Specificity         float64 `json:"specificity"`
	Completeness        float64 `json:"completeness"`
	Technical           float64 `json:"technical"`
	Structure           float64 `json:"structure"`
	Practicality        float64 `json:"practicality"`
	ContextRichness     float64 `json:"context_richness"`
	ConstraintClarity   float64 `json:"constraint_clarity"`
	OutputSpecification float64 `json:"output_specification"`
}

// Get returns the score of dimension d, or 0 for an unknown dimension.
func (s Scores) Get(d Dimension) float64 {
	switch d {
	case Clarity:
		return s.Clarity
	case Specificity:
		return s.Specificity
	case Completeness:
		return s.Completeness
	case Technical:
		return s.Technical
	case Structure:
		return s.Structure
	case Practicality:
		return s.Practicality
	case ContextRichness:
		return s.ContextRichness
	case ConstraintClarity:
		return s.ConstraintClarity
	case OutputSpecification:
		return s.OutputSpecification
	}
	return 0
}

// Overall is the weighted sum of the dimension scores.
func (s Scores) Overall() float64 {
	var total float64
	for _, w := range Weights {
		total += w.Weight * s.Get(w.Dimension)
	}
	return total
}

func (s Scores) rounded() Scores {
	return Scores{
		Clarity:             Round2(s.Clarity),
		Specificity:         Round2(s.Specificity),
		Completeness:        Round2(s.Completeness),
		Technical:           Round2(s.Technical),
		Structure:           Round2(s.Structure),
		Practicality:        Round2(s.Practicality),
		ContextRichness:     Round2(s.ContextRichness),
		ConstraintClarity:   Round2(s.ConstraintClarity),
		OutputSpecification: Round2(s.OutputSpecification),
	}
}

// Dimensions combines extracted features into unrounded dimension scores.
func Dimensions(f Features) Scores {
	words := float64(f.WordCount)
	sentences := 0.0
	if f.SentenceCount > 0 {
		sentences = 3
	}

	return Scores{
		Clarity: clamp(1.5*n(f.ActionVerbs) + sentences + min(2, words/50)),
		Specificity: clamp(1.2*n(f.SpecificTerms) + 0.8*n(f.TechnicalTerms) +
			0.5*n(f.Constraints)),
		Completeness: clamp(0.8*n(f.MustHaves) + 0.4*n(f.NiceToHaves) +
			0.5*n(f.ParagraphCount) + min(3, words/100)),
		Technical: clamp(1.5*n(f.TechnicalTerms) + 0.3*n(f.BracketChars)),
		Structure: clamp(0.5*n(f.ParagraphCount) + 0.5*n(f.BulletLines) +
			0.4*n(f.NumberedLines)),
		Practicality: clamp(1.0*n(f.ActionVerbs) + 0.6*n(f.Constraints) +
			0.5*n(f.MustHaves)),
		ContextRichness: clamp(1.2*n(f.ContextIndicators) + 1.5*n(f.ExamplesProvided) +
			0.8*n(f.DomainTerms)),
		ConstraintClarity: clamp(1.0*n(f.Constraints) + 1.5*n(f.QuantitativeSpecs) +
			1.2*n(f.ComparisonTerms) + 0.8*n(f.BoundaryDefinitions)),
		OutputSpecification: clamp(1.3*n(f.DeliverableTerms) + 1.0*n(f.FormatSpecs) +
			0.9*n(f.QualityCriteria)),
	}
}

func n(count int) float64 { return float64(count) }

func clamp(v float64) float64 { return min(MaxScore, v) }

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
