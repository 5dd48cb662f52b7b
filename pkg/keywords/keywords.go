// Package keywords pulls a short keyword list out of uploaded text.
package keywords

import (
	"regexp"
	"strings"
)

// Limit is the maximum number of keywords returned.
const Limit = 15

var wordRX = regexp.MustCompile(`\b[a-z]+\b`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "to": {}, "for": {}, "of": {}, "in": {}, "on": {}, "at": {}, "by": {}, "with": {},
}

// Extract returns up to Limit unique lower-case words longer than three
// letters, skipping stop words, in order of first appearance.
func Extract(text string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, w := range wordRX.FindAllString(strings.ToLower(text), -1) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) == Limit {
			break
		}
	}
	return out
}
