package optimizer

import (
	"regexp"
	"strings"
)

var (
	separator = strings.Repeat("=", 80)

	sectionHeadingRX     = regexp.MustCompile(`(?m)^\s*\*\*(\d+\.\s*[^*\n]+?)\*\*\s*$`)
	requirementHeadingRX = regexp.MustCompile(`\*\*([A-Za-z-]{5,30} Requirements?):?\*\*`)
	numberedRX           = regexp.MustCompile(`\n(\d+\.)`)
	blankRunRX           = regexp.MustCompile(`\n{3,}`)
)

// FormatOutput adds visual separators to numbered bold headings, marks
// "... Requirements" subheadings and spaces out numbered lists.
// A closing separator is appended when any section heading was found.
func FormatOutput(text string) string {
	text = strings.TrimSpace(text)
	sectioned := sectionHeadingRX.MatchString(text)

	text = requirementHeadingRX.ReplaceAllString(text, "\n\n--- $1 ---\n")
	text = numberedRX.ReplaceAllString(text, "\n\n$1")
	text = sectionHeadingRX.ReplaceAllString(text, separator+"\n$1\n"+separator)
	text = blankRunRX.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if sectioned {
		text += "\n\n" + separator + "\nEND OF GUIDE\n" + separator
	}
	return text
}
