package quality

import (
	"strings"
)

// Readability buckets the average sentence length of a prompt.
type Readability string

const (
	Clear    Readability = "Clear"
	Moderate Readability = "Moderate"
	Complex  Readability = "Complex"
)

// Analysis is the descriptive summary returned next to a report.
type Analysis struct {
	WordCount   int         `json:"word_count"`
	Readability Readability `json:"readability"`
	ActionVerbs int         `json:"action_verbs"`
	Elements    []string    `json:"elements"`
	Scores      Report      `json:"scores"`
}

var primaryVerbRX = wordsRX(PrimaryActionVerbs...)

// elements are detected by plain substring presence, in this order.
var elements = []struct {
	name  string
	hints []string
}{
	{"Function", []string{"function", "method"}},
	{"API", []string{"api", "endpoint"}},
	{"Database", []string{"database", "schema"}},
	{"Testing", []string{"test", "validate"}},
	{"Security", []string{"security", "authenticate"}},
	{"Performance", []string{"performance", "optimize"}},
}

// Analyze summarizes text and scores it.
func Analyze(text string) Analysis {
	f := Extract(text)
	a := Analysis{
		WordCount:   f.WordCount,
		Readability: readabilityOf(f.WordCount, f.SentenceCount),
		ActionVerbs: countMatches(primaryVerbRX, text),
		Elements:    DetectElements(text),
		Scores:      FromFeatures(f),
	}
	return a
}

// DetectElements lists the structural elements a prompt mentions.
func DetectElements(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, el := range elements {
		for _, h := range el.hints {
			if strings.Contains(lower, h) {
				out = append(out, el.name)
				break
			}
		}
	}
	return out
}

func readabilityOf(words, sentences int) Readability {
	avg := float64(words) / float64(max(sentences, 1))
	switch {
	case avg > 20:
		return Complex
	case avg > 15:
		return Moderate
	default:
		return Clear
	}
}
